// Package otpledger stores issued one-time codes keyed by identity. Codes
// are kept hashed at rest; expiry is checked lazily on verification so a
// stale entry is indistinguishable from a swept one.
package otpledger

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrExpired means the stored code outlived its ttl. The entry is
	// deleted; the login must restart.
	ErrExpired = errors.New("otpledger: code expired")

	// ErrNotFound means no code is stored for the identity.
	ErrNotFound = errors.New("otpledger: code not found")

	// ErrMismatch means the submitted code does not match. The entry is
	// kept so the caller may retry.
	ErrMismatch = errors.New("otpledger: code mismatch")
)

// Ledger issues and verifies one-time codes, one live code per identity.
type Ledger interface {
	// Issue stores code for identity with the given lifetime, replacing any
	// previous entry. Returns the absolute expiry.
	Issue(ctx context.Context, identity, code string, ttl time.Duration) (time.Time, error)

	// Verify checks submitted against the stored code. On match the entry
	// is deleted and nil is returned. Otherwise one of ErrExpired
	// (entry deleted), ErrNotFound, or ErrMismatch (entry kept).
	Verify(ctx context.Context, identity, submitted string) error
}
