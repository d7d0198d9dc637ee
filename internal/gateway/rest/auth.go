package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dvail/trackline/internal/domain/auth"
	"github.com/dvail/trackline/internal/gateway"
)

type restUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		DisplayName string `json:"display_name"`
		FullName    string `json:"full_name"`
	} `json:"user_metadata"`
}

func (u restUser) toUser() auth.User {
	return auth.User{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.UserMetadata.DisplayName,
		FullName: u.UserMetadata.FullName,
	}
}

// SignInWithPassword exchanges email and password for a session and
// captures its access token for subsequent requests.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error) {
	query := url.Values{"grant_type": {"password"}}
	body := map[string]string{"email": email, "password": password}

	var resp struct {
		AccessToken string   `json:"access_token"`
		User        restUser `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/v1/token", query, nil, body, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized) {
			return nil, gateway.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("password sign-in: %w", err)
	}

	c.setToken(resp.AccessToken)
	return &auth.Session{
		AccessToken: resp.AccessToken,
		User:        resp.User.toUser(),
	}, nil
}

// SignOut revokes the current session. Without a session it is a no-op.
func (c *Client) SignOut(ctx context.Context) error {
	if !c.hasToken() {
		return nil
	}
	if err := c.do(ctx, http.MethodPost, "/auth/v1/logout", nil, nil, nil, nil); err != nil {
		return fmt.Errorf("sign-out: %w", err)
	}
	c.setToken("")
	return nil
}

// GetUser returns the identity bound to the current access token, or
// nil when there is no session or the token is no longer accepted.
func (c *Client) GetUser(ctx context.Context) (*auth.User, error) {
	if !c.hasToken() {
		return nil, nil
	}

	var resp restUser
	err := c.do(ctx, http.MethodGet, "/auth/v1/user", nil, nil, nil, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			c.setToken("")
			return nil, nil
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	user := resp.toUser()
	return &user, nil
}

// IsAdmin reports whether the user appears in the admin_users table.
func (c *Client) IsAdmin(ctx context.Context, userID string) (bool, error) {
	query := url.Values{
		"select":  {"user_id"},
		"user_id": {"eq." + userID},
		"limit":   {"1"},
	}

	var rows []struct {
		UserID string `json:"user_id"`
	}
	if err := c.do(ctx, http.MethodGet, "/rest/v1/admin_users", query, nil, nil, &rows); err != nil {
		return false, fmt.Errorf("admin lookup: %w", err)
	}
	return len(rows) > 0, nil
}
