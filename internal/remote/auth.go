package remote

import (
	"context"
	"net/http"
)

// LoginResponse captures the session issued for a credential login.
type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// User reflects API user payloads.
type User struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var resp LoginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the user the session token belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, "fetch current user", http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the display name of the current user.
func (c *Client) UpdateProfile(ctx context.Context, name string) (*User, error) {
	var user User
	if err := c.do(ctx, "update profile", http.MethodPut, "/auth/profile", map[string]string{"name": name}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword replaces the current user's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}
	return c.do(ctx, "change password", http.MethodPut, "/auth/password", body, nil)
}
