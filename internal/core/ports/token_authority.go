package ports

import "context"

// TokenAuthority mints and revokes the bearer tokens used for session
// authentication. Tokens are opaque to the rest of the system; a token is
// valid only while its backing session is live, so revocation is immediate.
type TokenAuthority interface {
	// Mint issues a new bearer token bound to the given user.
	Mint(ctx context.Context, userID string) (string, error)
	// Resolve returns the user id a presented token is bound to, or
	// domain.ErrSessionNotFound / domain.ErrUnauthenticated when it is
	// revoked, expired, or malformed.
	Resolve(ctx context.Context, token string) (string, error)
	// Revoke invalidates exactly the presented token.
	Revoke(ctx context.Context, token string) error
	// RevokeAll invalidates every live token bound to the user.
	RevokeAll(ctx context.Context, userID string) error
}
