package api

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/cloudsync/internal/client/models"
)

// Register creates a new account. The account stays disabled until activated
// through the emailed code.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.post(ctx, "/auth/register", nil, req, &resp)
	return resp, err
}

// Login exchanges credentials for a bearer token and a profile snapshot.
// Persisting the token is the session's job, not the transport's.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.post(ctx, "/auth/login", nil, req, &resp)
	return resp, err
}

// Activate enables a freshly registered account.
func (c *Client) Activate(ctx context.Context, code string) error {
	return c.get(ctx, "/auth/activate/"+url.PathEscape(code), nil, nil)
}

// Logout invalidates the token server-side. Best effort; the session clears
// local credentials regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil, nil)
}

// RefreshToken trades the current token for a fresh one.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.post(ctx, "/auth/refresh", nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ForgotPassword asks the server to email a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/forgot-password", nil, models.ForgotPasswordRequest{Email: email}, nil)
}

// ResetPassword sets a new password using the token from the reset email.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.post(ctx, "/auth/reset-password", nil, models.ResetPasswordRequest{Token: token, NewPassword: newPassword}, nil)
}
