package domain

import "errors"

var (
	// ErrUnknownKind is returned for a puzzle kind outside Kinds().
	ErrUnknownKind = errors.New("unknown puzzle kind")
	// ErrNoCredential means no generator credential is configured.
	ErrNoCredential = errors.New("generator credential not configured")
	// ErrInvalidContent indicates content that breaks the shape rules of its kind.
	ErrInvalidContent = errors.New("invalid puzzle content")
	// ErrNotFound is returned by key-value stores for a missing key.
	ErrNotFound = errors.New("key not found")
	// ErrNoIdentity is returned when a puzzle is started before a user signs in.
	ErrNoIdentity = errors.New("no user identity established")
	// ErrEmptyName rejects blank user names.
	ErrEmptyName = errors.New("user name is empty")
)
