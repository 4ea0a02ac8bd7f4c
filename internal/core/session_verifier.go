package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"workoo-web/internal/models"
)

// SessionVerifier confirms a stored token against the keep-alive endpoint and
// refreshes the session with whatever the backend returns.
type SessionVerifier struct {
	api    KeepAliveAPI
	logger *zap.Logger
	now    func() time.Time
}

// NewSessionVerifier creates a SessionVerifier.
func NewSessionVerifier(api KeepAliveAPI, logger *zap.Logger) *SessionVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionVerifier{api: api, logger: logger, now: time.Now}
}

// Verify calls GET /auth/keep with the stored token.
//
// On success the rotated token, role, profile flag, user id and company id are
// written with one Set and the fresh session is returned. On any failure every
// session entry is cleared and the error wraps ErrUnauthenticated. If ctx is
// done by the time the backend answers, the answer is dropped and the store is
// left untouched.
func (v *SessionVerifier) Verify(ctx context.Context, sess SessionContext) (models.Session, error) {
	current := sess.Snapshot(ctx)
	if current.Anonymous() {
		// Drop any role or id left behind without a token.
		v.clear(ctx, sess)
		return models.Session{}, ErrUnauthenticated
	}
	if tokenExpired(current.Token, v.now()) {
		v.logger.Info("Stored token already expired", zap.String("browserId", sess.BrowserID()))
		v.clear(ctx, sess)
		return models.Session{}, fmt.Errorf("%w: token expired", ErrUnauthenticated)
	}

	payload, err := v.api.Keep(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return models.Session{}, ctxErr
	}
	if err != nil {
		v.logger.Info("Keep-alive rejected, clearing session", zap.String("browserId", sess.BrowserID()), zap.Error(err))
		v.clear(ctx, sess)
		return models.Session{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	next := payload.Session()
	if next.Token == "" {
		next.Token = current.Token
	}
	if next.Role == "" {
		v.logger.Warn("Keep-alive response has no role, clearing session", zap.String("browserId", sess.BrowserID()))
		v.clear(ctx, sess)
		return models.Session{}, fmt.Errorf("%w: keep-alive response has no role", ErrUnauthenticated)
	}

	if err := sess.Set(ctx, next); err != nil {
		v.clear(ctx, sess)
		return models.Session{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if payload.User != nil {
		if raw, err := json.Marshal(payload.User); err == nil {
			_ = sess.Put(ctx, models.KeyUser, string(raw))
		}
	}
	return next, nil
}

func (v *SessionVerifier) clear(ctx context.Context, sess SessionContext) {
	// The caller's ctx may be the reason we are clearing; use a detached one.
	if err := sess.Clear(context.WithoutCancel(ctx)); err != nil {
		v.logger.Error("Failed to clear session", zap.String("browserId", sess.BrowserID()), zap.Error(err))
	}
}

// tokenExpired reports whether token is a JWT whose exp claim is not after now.
// Opaque tokens are never considered expired here; the backend decides.
func tokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.Time.After(now)
}
