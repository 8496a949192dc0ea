package score

import (
	"context"
	"errors"
	"testing"

	"puzzle-service/internal/infra/memory"
	"puzzle-service/internal/store"
)

func TestLedgerPersistsEveryAdd(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	ledger := NewLedger(kv)

	if got := ledger.LoadFor(ctx, " Yuval "); got != 0 {
		t.Fatalf("expected fresh user at 0, got %d", got)
	}
	ledger.Add(ctx, 10)
	if total := ledger.Add(ctx, 5); total != 15 {
		t.Fatalf("expected total 15, got %d", total)
	}

	raw, err := kv.Get(ctx, store.ScoreKey("yuval"))
	if err != nil || raw != "15" {
		t.Fatalf("expected persisted 15, got %q err=%v", raw, err)
	}

	other := NewLedger(kv)
	if got := other.LoadFor(ctx, "YUVAL"); got != 15 {
		t.Fatalf("expected reload to see 15, got %d", got)
	}
}

func TestLedgerReset(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	ledger := NewLedger(kv)
	ledger.LoadFor(ctx, "aviv")
	ledger.Add(ctx, 5)

	ledger.Reset(ctx)
	if ledger.Total() != 0 {
		t.Fatalf("expected 0 after reset, got %d", ledger.Total())
	}
	raw, _ := kv.Get(ctx, store.ScoreKey("aviv"))
	if raw != "0" {
		t.Fatalf("expected persisted 0, got %q", raw)
	}
}

func TestLedgerSurvivesStoreFailures(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(brokenKV{})

	if got := ledger.LoadFor(ctx, "aviv"); got != 0 {
		t.Fatalf("expected 0 on read failure, got %d", got)
	}
	if total := ledger.Add(ctx, 5); total != 5 {
		t.Fatalf("expected session-only total 5, got %d", total)
	}
}

func TestLedgerIgnoresMalformedValue(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	_ = kv.Set(ctx, store.ScoreKey("aviv"), "many")

	if got := NewLedger(kv).LoadFor(ctx, "aviv"); got != 0 {
		t.Fatalf("expected 0 for malformed score, got %d", got)
	}
}

func TestIdentityLifecycle(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	_ = kv.Set(ctx, store.ScoreKey("aviv"), "30")

	ledger := NewLedger(kv)
	identity := NewIdentity(kv, ledger)

	if _, ok := identity.Restore(ctx); ok {
		t.Fatalf("expected no identity on a fresh store")
	}
	if _, err := identity.Set(ctx, "   "); err == nil {
		t.Fatalf("expected blank name to be rejected")
	}

	user, err := identity.Set(ctx, "Aviv")
	if err != nil || user != "aviv" {
		t.Fatalf("set identity: user=%q err=%v", user, err)
	}
	if ledger.Total() != 30 {
		t.Fatalf("expected stored score 30, got %d", ledger.Total())
	}

	restored, ok := NewIdentity(kv, NewLedger(kv)).Restore(ctx)
	if !ok || restored != "aviv" {
		t.Fatalf("expected restore to find aviv, got %q ok=%v", restored, ok)
	}

	if err := identity.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if ledger.Total() != 0 || identity.Current() != "" {
		t.Fatalf("expected cleared ledger, got user=%q total=%d", identity.Current(), ledger.Total())
	}
	if raw, _ := kv.Get(ctx, store.ScoreKey("aviv")); raw != "30" {
		t.Fatalf("clearing identity must keep the stored score, got %q", raw)
	}
}

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, error) { return "", errors.New("disk gone") }
func (brokenKV) Set(context.Context, string, string) error  { return errors.New("disk gone") }
func (brokenKV) Delete(context.Context, string) error       { return errors.New("disk gone") }
