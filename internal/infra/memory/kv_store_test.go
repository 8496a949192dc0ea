package memory

import (
	"context"
	"errors"
	"testing"

	"puzzle-service/internal/domain"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if _, err := s.Get(ctx, "score_aviv"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := s.Set(ctx, "score_aviv", "15"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, "score_aviv")
	if err != nil || got != "15" {
		t.Fatalf("expected 15, got %q err=%v", got, err)
	}
	if err := s.Delete(ctx, "score_aviv"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "score_aviv"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
