package settings

import (
	"context"
	"errors"
	"fmt"

	"akfinance/internal/core"
	"akfinance/internal/storage"
)

const (
	keyTheme       = "theme"
	keyDisplayName = "display_name"
	keyCurrency    = "currency"
	keyLocale      = "locale"
)

// SQLiteStore persists settings through the storage repository.
type SQLiteStore struct {
	repo *storage.SQLiteRepository
}

// NewSQLiteStore opens (or creates) the settings database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initialize settings storage: %w", err)
	}
	return &SQLiteStore{repo: repo}, nil
}

// Get reads each setting key, falling back to the default for keys that
// were never saved.
func (s *SQLiteStore) Get(ctx context.Context) (Settings, error) {
	out := Defaults()
	fields := []struct {
		key string
		dst *string
	}{
		{keyTheme, &out.Theme},
		{keyDisplayName, &out.DisplayName},
		{keyCurrency, &out.Currency},
		{keyLocale, &out.Locale},
	}
	for _, f := range fields {
		v, err := s.repo.GetValue(ctx, f.key)
		if errors.Is(err, core.ErrNotFound) {
			continue
		}
		if err != nil {
			return Settings{}, err
		}
		*f.dst = v
	}
	return out, nil
}

func (s *SQLiteStore) Save(ctx context.Context, set Settings) error {
	if err := set.Validate(); err != nil {
		return err
	}

	pairs := map[string]string{
		keyTheme:       set.Theme,
		keyDisplayName: set.DisplayName,
		keyCurrency:    set.Currency,
		keyLocale:      set.Locale,
	}
	for k, v := range pairs {
		if err := s.repo.SetValue(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.repo.Close()
}
