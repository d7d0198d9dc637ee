package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dvail/trackline/internal/domain/auth"
	"github.com/dvail/trackline/internal/gateway"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CreateUserParams are the inputs for a new local account.
type CreateUserParams struct {
	Email    string
	Password string
	Name     string
	FullName string
}

// CreateUser registers a local account with a bcrypt password hash.
func (g *Gateway) CreateUser(ctx context.Context, params CreateUserParams) (*auth.User, error) {
	if params.Email == "" || params.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &auth.User{
		ID:       uuid.NewString(),
		Email:    params.Email,
		Name:     params.Name,
		FullName: params.FullName,
	}

	_, err = g.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, display_name, full_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, string(hash), user.Name, user.FullName, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// SignInWithPassword verifies the password against the stored hash and
// starts an in-process session. Unknown email and wrong password both
// come back as ErrInvalidCredentials.
func (g *Gateway) SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error) {
	var user auth.User
	var hash string
	err := g.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, display_name, full_name
		FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Email, &hash, &user.Name, &user.FullName)
	if err == sql.ErrNoRows {
		return nil, gateway.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, gateway.ErrInvalidCredentials
	}

	token := uuid.NewString()

	g.mu.Lock()
	g.current = &user
	g.token = token
	g.mu.Unlock()

	return &auth.Session{AccessToken: token, User: user}, nil
}

// SignOut ends the in-process session. Without a session it is a no-op.
func (g *Gateway) SignOut(ctx context.Context) error {
	g.mu.Lock()
	g.current = nil
	g.token = ""
	g.mu.Unlock()
	return nil
}

// GetUser returns the identity of the in-process session, or nil when
// nobody is signed in.
func (g *Gateway) GetUser(ctx context.Context) (*auth.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil {
		return nil, nil
	}
	user := *g.current
	return &user, nil
}

// UserByEmail looks up a local account. A missing account is
// gateway.ErrNotFound.
func (g *Gateway) UserByEmail(ctx context.Context, email string) (*auth.User, error) {
	var user auth.User
	err := g.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, full_name
		FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Email, &user.Name, &user.FullName)
	if err == sql.ErrNoRows {
		return nil, gateway.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	return &user, nil
}

// IsAdmin reports whether the user appears in the admin_users table.
func (g *Gateway) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var one int
	err := g.db.QueryRowContext(ctx,
		`SELECT 1 FROM admin_users WHERE user_id = ?`, userID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("admin lookup: %w", err)
	}
	return true, nil
}

// GrantAdmin adds the user to the admin_users table. Granting twice is
// a no-op.
func (g *Gateway) GrantAdmin(ctx context.Context, userID string) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO admin_users (user_id, granted_at)
		VALUES (?, ?)`,
		userID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("granting admin: %w", err)
	}
	return nil
}

// RevokeAdmin removes the user from the admin_users table.
func (g *Gateway) RevokeAdmin(ctx context.Context, userID string) error {
	if _, err := g.db.ExecContext(ctx, `DELETE FROM admin_users WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("revoking admin: %w", err)
	}
	return nil
}
