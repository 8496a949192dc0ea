package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"puzzle-service/internal/domain"
)

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "puzzles.db")

	store, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Set(ctx, "score_yuval", "40"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "score_yuval", "45"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "score_yuval")
	if err != nil || got != "45" {
		t.Fatalf("expected 45, got %q err=%v", got, err)
	}
	if err := reopened.Delete(ctx, "score_yuval"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := reopened.Get(ctx, "score_yuval"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
