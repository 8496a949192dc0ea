package memory

import (
	"testing"

	"puzzle-service/internal/domain"
	"puzzle-service/internal/engine"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()
	session := engine.NewSession("s-1", domain.KindMath, nil, engine.DefaultDelays(), nil)
	loop := engine.NewLoop(session, nil, nil)

	store.Put(loop)
	got, ok := store.Get("s-1")
	if !ok || got != loop {
		t.Fatalf("expected session present")
	}

	store.Delete("s-1")
	if _, ok := store.Get("s-1"); ok {
		t.Fatalf("expected session removed")
	}
}
