package redis

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"puzzle-service/internal/domain"
)

func TestStorePrefixesKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewStore(newClient(mr))
	ctx := context.Background()

	if err := store.Set(ctx, "score_aviv", "20"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := mr.Get("puzzle:score_aviv")
	if err != nil || got != "20" {
		t.Fatalf("expected prefixed key with 20, got %q err=%v", got, err)
	}

	value, err := store.Get(ctx, "score_aviv")
	if err != nil || value != "20" {
		t.Fatalf("expected 20, got %q err=%v", value, err)
	}

	if err := store.Delete(ctx, "score_aviv"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "score_aviv"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStoreReportsConnectionErrors(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	store := NewStore(newClient(mr))
	mr.Close()

	_, err = store.Get(context.Background(), "identity_name")
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:       mr.Addr(),
		MaxRetries: -1,
	})
}
