package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"workoo-web/internal/models"
)

// AuthService runs the sign-in, sign-out and verification flows and keeps the
// Token Store in step with them.
type AuthService struct {
	api       AuthAPI
	validator CredentialValidator
	profiles  *ProfileCache
	logger    *zap.Logger
}

// NewAuthService creates an AuthService. validator may be nil.
func NewAuthService(api AuthAPI, validator CredentialValidator, profiles *ProfileCache, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{api: api, validator: validator, profiles: profiles, logger: logger}
}

// SignIn authenticates with email and password and stores the new session.
func (s *AuthService) SignIn(ctx context.Context, sess SessionContext, req models.SignInRequest) (models.Session, error) {
	payload, err := s.api.SignIn(ctx, req)
	if err != nil {
		return models.Session{}, err
	}
	return s.store(ctx, sess, payload)
}

// SocialSignIn authenticates with a Google credential and stores the new session.
func (s *AuthService) SocialSignIn(ctx context.Context, sess SessionContext, credential string) (models.Session, error) {
	if s.validator != nil {
		if err := s.validator.Validate(ctx, credential); err != nil {
			return models.Session{}, err
		}
	}
	payload, err := s.api.SocialSignIn(ctx, credential)
	if err != nil {
		return models.Session{}, err
	}
	return s.store(ctx, sess, payload)
}

func (s *AuthService) store(ctx context.Context, sess SessionContext, payload *models.AuthPayload) (models.Session, error) {
	next := payload.Session()
	if next.Token == "" || next.Role == "" {
		return models.Session{}, fmt.Errorf("%w: sign-in response is missing token or role", ErrUnauthenticated)
	}
	if err := sess.Set(ctx, next); err != nil {
		return models.Session{}, fmt.Errorf("failed to store session: %w", err)
	}
	if payload.User != nil {
		if raw, err := json.Marshal(payload.User); err == nil {
			_ = sess.Put(ctx, models.KeyUser, string(raw))
		}
		if s.profiles != nil {
			s.profiles.PutUser(*payload.User)
		}
	}
	s.logger.Info("Signed in", zap.String("browserId", sess.BrowserID()), zap.Int("userId", next.UserID), zap.String("role", string(next.Role)))
	return next, nil
}

// Logout clears every session entry of the browser.
func (s *AuthService) Logout(ctx context.Context, sess SessionContext) error {
	current := sess.Snapshot(ctx)
	if s.profiles != nil && current.UserID != 0 {
		s.profiles.ForgetUser(current.UserID)
	}
	if err := sess.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.logger.Info("Signed out", zap.String("browserId", sess.BrowserID()), zap.Int("userId", current.UserID))
	return nil
}

// VerifyEmail confirms an email verification token and remembers the verified
// user and token for the follow-up pages.
func (s *AuthService) VerifyEmail(ctx context.Context, sess SessionContext, token string) (*models.User, error) {
	result, err := s.api.VerifyEmail(ctx, token)
	if err != nil {
		return nil, err
	}
	verifiedToken := result.Token
	if verifiedToken == "" {
		verifiedToken = token
	}
	if err := sess.Put(ctx, models.KeyVerifiedToken, verifiedToken); err != nil {
		return nil, err
	}
	if result.User != nil {
		raw, err := json.Marshal(result.User)
		if err != nil {
			return nil, err
		}
		if err := sess.Put(ctx, models.KeyVerifiedUser, string(raw)); err != nil {
			return nil, err
		}
	}
	return result.User, nil
}

// ResetPassword forwards a new password for a reset token.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" {
		return errors.New("reset token is required")
	}
	return s.api.ResetPassword(ctx, token, password)
}

// ResendVerification asks the backend to mail a new verification link.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	return s.api.ResendVerification(ctx, email)
}

// StoredUser decodes the persisted user snapshot, if any.
func StoredUser(ctx context.Context, sess SessionContext) (*models.User, bool) {
	return decodeUser(ctx, sess, models.KeyUser)
}

// VerifiedUser decodes the user remembered by the last email verification.
func VerifiedUser(ctx context.Context, sess SessionContext) (*models.User, bool) {
	return decodeUser(ctx, sess, models.KeyVerifiedUser)
}

func decodeUser(ctx context.Context, sess SessionContext, key string) (*models.User, bool) {
	raw, ok := sess.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, false
	}
	return &u, true
}
