// Package store defines the key-value persistence port and the key layout
// shared by the score ledger, the identity record and the generator credential.
package store

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"puzzle-service/internal/domain"
)

// KV is a string key-value store. Get returns domain.ErrNotFound for a
// missing key.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

const (
	IdentityKey   = "identity_name"
	CredentialKey = "generator_credential"
	scorePrefix   = "score_"
)

// ScoreKey returns the key holding the total score of a normalized user name.
func ScoreKey(userName string) string {
	return scorePrefix + userName
}

// NormalizeName trims, collapses inner whitespace and case-folds a user name.
func NormalizeName(name string) string {
	collapsed := strings.Join(strings.Fields(name), " ")
	return cases.Fold().String(collapsed)
}

// Credentials reads the generator credential from the store, falling back to
// a configured default when none was registered.
type Credentials struct {
	KV       KV
	Fallback string
}

// Credential returns the credential, or "" when none is configured. A store
// error is returned alongside the fallback so callers can log it.
func (c Credentials) Credential(ctx context.Context) (string, error) {
	fallback := strings.TrimSpace(c.Fallback)
	if c.KV == nil {
		return fallback, nil
	}
	value, err := c.KV.Get(ctx, CredentialKey)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fallback, nil
	case err != nil:
		return fallback, err
	}
	if value = strings.TrimSpace(value); value != "" {
		return value, nil
	}
	return fallback, nil
}
