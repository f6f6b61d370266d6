package settings

import (
	"context"
	"sync"
)

// MemoryStore keeps settings in process memory. Used in tests and when
// no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	current Settings
}

// NewMemoryStore creates a store seeded with defaults.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{current: Defaults()}
}

func (m *MemoryStore) Get(ctx context.Context) (Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, nil
}

func (m *MemoryStore) Save(ctx context.Context, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = s
	return nil
}

func (m *MemoryStore) Close() error { return nil }
