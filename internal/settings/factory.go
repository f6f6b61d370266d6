package settings

import (
	"fmt"

	"akfinance/internal/log"
)

// Backend selects how settings are persisted.
type Backend string

const (
	MemoryBackend Backend = "memory"
	SQLiteBackend Backend = "sqlite"
)

// IsValid returns true if the backend type is known.
func (b Backend) IsValid() bool {
	switch b {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// NewStore builds a settings store for the configured backend.
func NewStore(backend Backend, dbPath string, logger *log.Logger) (Store, error) {
	l := logger.WithComponent(log.ComponentSettings)

	switch backend {
	case MemoryBackend:
		l.Info("using in-memory settings store")
		return NewMemoryStore(), nil
	case SQLiteBackend:
		store, err := NewSQLiteStore(dbPath)
		if err != nil {
			return nil, err
		}
		l.Info("using sqlite settings store", "db_path", dbPath)
		return store, nil
	default:
		return nil, fmt.Errorf("invalid settings backend: %s", backend)
	}
}
