package auth

import "strings"

// User is the identity of the signed-in account.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"display_name,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// Session is the result of a password sign-in.
type Session struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// DisplayName returns the first present of display name, full name and
// the local part of the email, falling back to "User". Safe on a nil
// receiver so callers can derive a name with nobody signed in.
func (u *User) DisplayName() string {
	if u == nil {
		return "User"
	}
	if u.Name != "" {
		return u.Name
	}
	if u.FullName != "" {
		return u.FullName
	}
	if u.Email != "" {
		if local, _, ok := strings.Cut(u.Email, "@"); ok && local != "" {
			return local
		}
		return u.Email
	}
	return "User"
}
