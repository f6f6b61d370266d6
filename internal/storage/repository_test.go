package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"akfinance/internal/core"
)

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository failed: %v", err)
	}
	defer repo.Close()

	if _, err := repo.GetValue(ctx, "theme"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("missing key error = %v, want core.ErrNotFound", err)
	}

	if err := repo.SetValue(ctx, "theme", "dark"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	got, err := repo.GetValue(ctx, "theme")
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if got != "dark" {
		t.Fatalf("GetValue = %q, want dark", got)
	}

	// Second write for the same key must replace, not duplicate.
	if err := repo.SetValue(ctx, "theme", "light"); err != nil {
		t.Fatalf("SetValue upsert failed: %v", err)
	}
	got, err = repo.GetValue(ctx, "theme")
	if err != nil {
		t.Fatalf("GetValue after upsert failed: %v", err)
	}
	if got != "light" {
		t.Fatalf("GetValue after upsert = %q, want light", got)
	}
}

func TestSQLiteRepositoryCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "data", "settings.db")
	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteRepository failed: %v", err)
	}
	repo.Close()
}
