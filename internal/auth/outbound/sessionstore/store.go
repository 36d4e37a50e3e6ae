// Package sessionstore persists per-session login handshake state keyed by
// the opaque session token. The consume-once Take methods are the
// serialization boundary: two concurrent submissions can never both observe
// the same stored challenge or pending identity.
package sessionstore

import "context"

// Store holds handshake state per session token. Implementations must make
// each method atomic with respect to the same token.
type Store interface {
	// SetChallenge stores the expected challenge answer, replacing any
	// previous one. Newest challenge wins.
	SetChallenge(ctx context.Context, token, answer string) error

	// TakeChallenge returns the stored answer and clears it in one step.
	// Returns "" when no challenge is stored.
	TakeChallenge(ctx context.Context, token string) (string, error)

	// SetPendingIdentity marks the session as awaiting code confirmation.
	// Clears any authenticated identity.
	SetPendingIdentity(ctx context.Context, token, identity string) error

	// TakePendingIdentity returns the pending identity and clears it in one
	// step. Returns "" when none is pending.
	TakePendingIdentity(ctx context.Context, token string) (string, error)

	// SetAuthenticated promotes the session to authenticated. Clears any
	// pending identity.
	SetAuthenticated(ctx context.Context, token, identity string) error

	// Authenticated returns the authenticated identity, or "" when the
	// session is not authenticated.
	Authenticated(ctx context.Context, token string) (string, error)

	// Clear drops all handshake state for the session. Clearing an unknown
	// token is a no-op.
	Clear(ctx context.Context, token string) error
}
