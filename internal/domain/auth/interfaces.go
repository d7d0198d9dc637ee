package auth

import "context"

// Gateway provides identity operations on the remote service.
type Gateway interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	// GetUser returns the identity of the gateway's active session, or
	// nil when no session is active.
	GetUser(ctx context.Context) (*User, error)
}
