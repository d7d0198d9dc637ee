package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Store holds the current identity and mediates sign-in, sign-out and
// identity refresh against the gateway.
type Store struct {
	gw     Gateway
	logger *slog.Logger

	mu      sync.Mutex
	user    *User
	loading bool
}

// NewStore creates a new auth store.
func NewStore(gw Gateway, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{gw: gw, logger: logger}
}

// SignIn authenticates with email and password. On success the returned
// session's user becomes the current identity; on failure the identity
// is left unchanged and the error propagates.
func (s *Store) SignIn(ctx context.Context, email, password string) (*Session, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	sess, err := s.gw.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("signing in: %w", err)
	}

	s.mu.Lock()
	user := sess.User
	s.user = &user
	s.mu.Unlock()

	return sess, nil
}

// SignOut ends the gateway session. The identity is cleared only when
// the gateway confirms the sign-out.
func (s *Store) SignOut(ctx context.Context) error {
	if err := s.gw.SignOut(ctx); err != nil {
		return fmt.Errorf("signing out: %w", err)
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	return nil
}

// CurrentUser re-derives the identity from the gateway's session state,
// stores it and returns it. It never returns an error: any failure
// clears the identity and yields nil, since this call gates navigation.
func (s *Store) CurrentUser(ctx context.Context) *User {
	user, err := s.gw.GetUser(ctx)
	if err != nil {
		s.logger.Error("getting current user", "error", err)
		user = nil
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	return user
}

// IsAuthenticated reports whether an identity is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// User returns the cached identity, which may be nil.
func (s *Store) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// DisplayName derives a presentable name for the cached identity.
func (s *Store) DisplayName() string {
	return s.User().DisplayName()
}

// Loading reports whether a sign-in call is outstanding.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
