package core

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"workoo-web/internal/backend"
	"workoo-web/internal/models"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func seededSession(t *testing.T, s models.Session) (SessionContext, *countingRepository) {
	t.Helper()
	store, repo := newTestStore()
	sess := store.For("browser")
	require.NoError(t, sess.Set(context.Background(), s))
	require.NoError(t, sess.Put(context.Background(), models.KeyUser, `{"id":1}`))
	return sess, repo
}

func TestVerifyRotatesTokenInOneWrite(t *testing.T) {
	ctx := context.Background()
	sess, repo := seededSession(t, models.Session{Token: "old", Role: models.RoleAdmin, UserID: 1, ProfileComplete: false})
	before := repo.Writes()

	api := &fakeKeepAlive{payload: &models.AuthPayload{
		Token: "new", Role: models.RoleAdmin, UserID: 1, CompanyID: intPtr(9), IsProfileComplete: true,
	}}
	verifier := NewSessionVerifier(api, zaptest.NewLogger(t))

	got, err := verifier.Verify(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, 1, repo.Writes()-before)

	want := models.Session{Token: "new", Role: models.RoleAdmin, UserID: 1, CompanyID: intPtr(9), ProfileComplete: true}
	assert.Equal(t, want, got)
	assert.Equal(t, want, sess.Snapshot(ctx))
}

func TestVerifyKeepsTokenWhenNotRotated(t *testing.T) {
	ctx := context.Background()
	sess, _ := seededSession(t, models.Session{Token: "same", Role: models.RoleUser, UserID: 2})

	api := &fakeKeepAlive{payload: &models.AuthPayload{Role: models.RoleUser, UserID: 2}}
	got, err := NewSessionVerifier(api, nil).Verify(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, "same", got.Token)
	tok, _ := sess.Get(ctx, models.KeyToken)
	assert.Equal(t, "same", tok)
}

func TestVerifyFailureClearsEverything(t *testing.T) {
	tests := []struct {
		name    string
		payload *models.AuthPayload
		err     error
	}{
		{name: "unauthorized", err: &backend.APIError{Method: http.MethodGet, Path: "/auth/keep", Status: http.StatusUnauthorized}},
		{name: "server error", err: &backend.APIError{Method: http.MethodGet, Path: "/auth/keep", Status: http.StatusInternalServerError}},
		{name: "transport failure", err: &backend.APIError{Method: http.MethodGet, Path: "/auth/keep", Err: errors.New("connection refused")}},
		{name: "no role in response", payload: &models.AuthPayload{Token: "new"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			sess, _ := seededSession(t, models.Session{Token: "old", Role: models.RoleAdmin, UserID: 1, CompanyID: intPtr(4), ProfileComplete: true})

			api := &fakeKeepAlive{payload: tt.payload, err: tt.err}
			_, err := NewSessionVerifier(api, zaptest.NewLogger(t)).Verify(ctx, sess)
			require.ErrorIs(t, err, ErrUnauthenticated)

			for _, key := range models.AllKeys {
				_, ok := sess.Get(ctx, key)
				assert.False(t, ok, key)
			}
		})
	}
}

func TestVerifyAnonymousDoesNotCallBackend(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()
	sess := store.For("browser")
	require.NoError(t, sess.Put(ctx, models.KeyRole, string(models.RoleAdmin)))

	api := &fakeKeepAlive{}
	_, err := NewSessionVerifier(api, nil).Verify(ctx, sess)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, api.calls)
	_, ok := sess.Get(ctx, models.KeyRole)
	assert.False(t, ok)
}

func TestVerifyExpiredTokenDoesNotCallBackend(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sess, _ := seededSession(t, models.Session{Token: signedToken(t, now.Add(-time.Minute)), Role: models.RoleUser, UserID: 1})

	api := &fakeKeepAlive{payload: &models.AuthPayload{Role: models.RoleUser}}
	verifier := NewSessionVerifier(api, nil)
	verifier.now = func() time.Time { return now }

	_, err := verifier.Verify(ctx, sess)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, api.calls)
	assert.True(t, sess.Snapshot(ctx).Anonymous())
}

func TestVerifyUnexpiredTokenCallsBackend(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sess, _ := seededSession(t, models.Session{Token: signedToken(t, now.Add(time.Hour)), Role: models.RoleUser, UserID: 1})

	api := &fakeKeepAlive{payload: &models.AuthPayload{Role: models.RoleUser, UserID: 1}}
	verifier := NewSessionVerifier(api, nil)
	verifier.now = func() time.Time { return now }

	_, err := verifier.Verify(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls)
}

func TestVerifyAfterCancellationLeavesStoreUntouched(t *testing.T) {
	tests := []struct {
		name    string
		payload *models.AuthPayload
		err     error
	}{
		{name: "late success", payload: &models.AuthPayload{Token: "new", Role: models.RoleAdmin, UserID: 1}},
		{name: "late failure", err: &backend.APIError{Method: http.MethodGet, Path: "/auth/keep", Status: http.StatusUnauthorized}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := models.Session{Token: "old", Role: models.RoleAdmin, UserID: 1, ProfileComplete: true}
			sess, repo := seededSession(t, original)
			before := repo.Writes()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			api := &fakeKeepAlive{payload: tt.payload, err: tt.err, hook: func(context.Context) { cancel() }}

			_, err := NewSessionVerifier(api, nil).Verify(ctx, sess)
			assert.ErrorIs(t, err, context.Canceled)
			assert.Equal(t, before, repo.Writes())
			assert.Equal(t, original, sess.Snapshot(context.Background()))
		})
	}
}

func TestVerifyStoresReturnedUser(t *testing.T) {
	ctx := context.Background()
	sess, _ := seededSession(t, models.Session{Token: "old", Role: models.RoleUser, UserID: 5})

	api := &fakeKeepAlive{payload: &models.AuthPayload{
		Token: "new",
		User:  &models.User{ID: 5, Email: "dev@workoo.io", Role: models.RoleUser},
	}}
	got, err := NewSessionVerifier(api, nil).Verify(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, got.Role)

	user, ok := StoredUser(ctx, sess)
	require.True(t, ok)
	assert.Equal(t, "dev@workoo.io", user.Email)
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, tokenExpired("opaque-token", now))
	assert.False(t, tokenExpired(signedToken(t, now.Add(time.Minute)), now))
	assert.True(t, tokenExpired(signedToken(t, now.Add(-time.Minute)), now))
}
