package redis

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"puzzle-service/internal/domain"
	"puzzle-service/internal/engine"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), time.Minute)
	loop := engine.NewLoop(engine.NewSession("s-1", domain.KindReveal, nil, engine.DefaultDelays(), nil), nil, nil)

	store.Put(loop)
	if got, _ := mr.Get("puzzle:session:s-1"); got != "reveal" {
		t.Fatalf("expected redis marker with kind, got %q", got)
	}
	if ttl := mr.TTL("puzzle:session:s-1"); ttl != time.Minute {
		t.Fatalf("expected ttl of a minute, got %v", ttl)
	}
	if _, ok := store.Get("s-1"); !ok {
		t.Fatalf("expected session present")
	}

	store.Delete("s-1")
	if mr.Exists("puzzle:session:s-1") {
		t.Fatalf("expected redis key to be removed")
	}
}
