package gateway

import "errors"

var (
	// ErrNotFound is returned when a write targets a row that doesn't
	// exist remotely
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned on a failed password sign-in.
	// Unknown email and wrong password are deliberately
	// indistinguishable
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoSession is returned for operations that need an active
	// session when none exists
	ErrNoSession = errors.New("no active session")
)
