package score

import (
	"context"
	"errors"
	"fmt"

	"puzzle-service/internal/domain"
	"puzzle-service/internal/store"
)

// Identity persists who is playing and keeps the ledger pointed at them.
type Identity struct {
	kv     store.KV
	ledger *Ledger
}

func NewIdentity(kv store.KV, ledger *Ledger) *Identity {
	return &Identity{kv: kv, ledger: ledger}
}

// Restore loads the persisted identity, if any, into the ledger.
func (i *Identity) Restore(ctx context.Context) (string, bool) {
	name, err := i.kv.Get(ctx, store.IdentityKey)
	if err != nil || name == "" {
		return "", false
	}
	i.ledger.LoadFor(ctx, name)
	return i.ledger.User(), true
}

// Set establishes userName as the current identity and loads its score.
func (i *Identity) Set(ctx context.Context, userName string) (string, error) {
	user := store.NormalizeName(userName)
	if user == "" {
		return "", domain.ErrEmptyName
	}
	if err := i.kv.Set(ctx, store.IdentityKey, user); err != nil {
		// The session still works; it just will not survive a restart.
		err = fmt.Errorf("persist identity: %w", err)
		i.ledger.LoadFor(ctx, user)
		return user, err
	}
	i.ledger.LoadFor(ctx, user)
	return user, nil
}

// Clear forgets the identity and resets the in-memory total to 0.
func (i *Identity) Clear(ctx context.Context) error {
	i.ledger.Clear()
	if err := i.kv.Delete(ctx, store.IdentityKey); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("clear identity: %w", err)
	}
	return nil
}

// Current returns the signed-in user, or "".
func (i *Identity) Current() string {
	return i.ledger.User()
}
