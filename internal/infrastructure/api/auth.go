package api

import (
	"context"

	"github.com/moppie/ops-console/internal/domain/auth"
)

// TokenResponse is the token pair returned by login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse is the full login payload.
type LoginResponse struct {
	User         auth.User `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Requires2FA  bool      `json:"requires_2fa"`
}

// Login exchanges credentials for a token pair. 401 means invalid or
// inactive credentials, 422 missing fields.
func (c *Client) Login(ctx context.Context, creds auth.Credentials) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.postPublic(ctx, "auth_login", "/auth/login/", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account. 409 means the email is already taken.
func (c *Client) Register(ctx context.Context, reg auth.Registration) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.postPublic(ctx, "auth_register", "/auth/register/", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new pair without touching the
// client's own stored session. The interceptor flow uses the internal
// refresh path instead.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.postPublic(ctx, "auth_refresh", "/auth/refresh/", refreshRequest{RefreshToken: refreshToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the session on the backend.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "auth_logout", "/auth/logout/", nil, nil)
}

// Profile returns the authenticated user.
func (c *Client) Profile(ctx context.Context) (*auth.User, error) {
	var out auth.User
	if err := c.get(ctx, "auth_profile", "/auth/profile/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
