package backend

import (
	"context"
	"net/http"
	"net/url"

	"workoo-web/internal/models"
)

// VerificationResult is returned by GET /auth/verify/{token}.
type VerificationResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// SignIn calls POST /auth/signin.
func (c *Client) SignIn(ctx context.Context, req models.SignInRequest) (*models.AuthPayload, error) {
	var out models.AuthPayload
	if err := c.doJSON(ctx, http.MethodPost, "/auth/signin", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SocialSignIn calls POST /auth/social with a Google credential.
func (c *Client) SocialSignIn(ctx context.Context, credential string) (*models.AuthPayload, error) {
	var out models.AuthPayload
	body := map[string]string{"provider": "google", "credential": credential}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/social", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Keep calls the keep-alive endpoint GET /auth/keep.
func (c *Client) Keep(ctx context.Context) (*models.AuthPayload, error) {
	var out models.AuthPayload
	if err := c.doJSON(ctx, http.MethodGet, "/auth/keep", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyEmail calls GET /auth/verify/{token}.
func (c *Client) VerifyEmail(ctx context.Context, token string) (*VerificationResult, error) {
	var out VerificationResult
	if err := c.doJSON(ctx, http.MethodGet, "/auth/verify/"+url.PathEscape(token), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword calls POST /auth/reset-password/{token}.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"password": password}
	return c.doJSON(ctx, http.MethodPost, "/auth/reset-password/"+url.PathEscape(token), body, nil)
}

// ResendVerification calls POST /auth/resend-verification.
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/resend-verification", map[string]string{"email": email}, nil)
}
