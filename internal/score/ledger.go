// Package score keeps the single persisted counter of the system: the total
// score of the signed-in user.
package score

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"puzzle-service/internal/domain"
	"puzzle-service/internal/store"
)

// Ledger accumulates points for one user and writes the total through to the
// store on every mutation. Storage failures degrade to a session-only score.
type Ledger struct {
	kv store.KV

	mu    sync.RWMutex
	user  string
	total int
}

func NewLedger(kv store.KV) *Ledger {
	return &Ledger{kv: kv}
}

// LoadFor switches the ledger to userName and reads its persisted total.
// A missing or unreadable value starts the user at 0.
func (l *Ledger) LoadFor(ctx context.Context, userName string) int {
	user := store.NormalizeName(userName)
	total := 0

	raw, err := l.kv.Get(ctx, store.ScoreKey(user))
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		log.Warn().Err(err).Str("user", user).Msg("score read failed, starting from 0")
	default:
		if n, perr := strconv.Atoi(raw); perr == nil && n >= 0 {
			total = n
		} else {
			log.Warn().Str("user", user).Str("raw", raw).Msg("ignoring malformed stored score")
		}
	}

	l.mu.Lock()
	l.user = user
	l.total = total
	l.mu.Unlock()
	return total
}

// Add adds points to the total and persists it. It returns the new total.
func (l *Ledger) Add(ctx context.Context, points int) int {
	l.mu.Lock()
	l.total += points
	user, total := l.user, l.total
	l.mu.Unlock()

	l.persist(ctx, user, total)
	return total
}

// Reset zeroes the total and persists it.
func (l *Ledger) Reset(ctx context.Context) {
	l.mu.Lock()
	l.total = 0
	user := l.user
	l.mu.Unlock()

	l.persist(ctx, user, 0)
}

// Clear forgets the current user without touching storage.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.user = ""
	l.total = 0
}

func (l *Ledger) Total() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}

func (l *Ledger) User() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.user
}

func (l *Ledger) persist(ctx context.Context, user string, total int) {
	if user == "" {
		return
	}
	if err := l.kv.Set(ctx, store.ScoreKey(user), strconv.Itoa(total)); err != nil {
		log.Warn().Err(err).Str("user", user).Int("total", total).Msg("score write failed")
	}
}
