package core

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"workoo-web/internal/backend"
	"workoo-web/internal/models"
)

func TestSignInStoresSessionAndUser(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()
	sess := store.For("b")
	profiles := NewProfileCache(8, time.Minute)

	api := &fakeAuthAPI{payload: &models.AuthPayload{
		Token: "tok",
		User:  &models.User{ID: 11, Email: "ana@workoo.io", Role: models.RoleAdmin, CompanyID: intPtr(2)},
	}}
	svc := NewAuthService(api, nil, profiles, zaptest.NewLogger(t))

	got, err := svc.SignIn(ctx, sess, models.SignInRequest{Email: "ana@workoo.io", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.Session{Token: "tok", Role: models.RoleAdmin, UserID: 11, CompanyID: intPtr(2)}, got)
	assert.Equal(t, got, sess.Snapshot(ctx))

	user, ok := StoredUser(ctx, sess)
	require.True(t, ok)
	assert.Equal(t, "ana@workoo.io", user.Email)

	cached, ok := profiles.User(11)
	require.True(t, ok)
	assert.Equal(t, "ana@workoo.io", cached.Email)
}

func TestSignInFailureLeavesStoreUntouched(t *testing.T) {
	tests := []struct {
		name    string
		payload *models.AuthPayload
		err     error
	}{
		{name: "rejected", err: &backend.APIError{Method: http.MethodPost, Path: "/auth/signin", Status: http.StatusUnauthorized, Message: "Invalid credentials"}},
		{name: "missing token", payload: &models.AuthPayload{Role: models.RoleUser}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, repo := newTestStore()
			sess := store.For("b")

			svc := NewAuthService(&fakeAuthAPI{payload: tt.payload, err: tt.err}, nil, nil, nil)
			_, err := svc.SignIn(ctx, sess, models.SignInRequest{Email: "a@b.c", Password: "secret1"})
			assert.Error(t, err)
			assert.Zero(t, repo.Writes())
		})
	}
}

func TestSocialSignInRejectedByValidator(t *testing.T) {
	ctx := context.Background()
	store, repo := newTestStore()
	sess := store.For("b")

	api := &fakeAuthAPI{payload: &models.AuthPayload{Token: "tok", Role: models.RoleUser}}
	svc := NewAuthService(api, rejectingValidator{err: ErrInvalidCredential}, nil, nil)

	_, err := svc.SocialSignIn(ctx, sess, "bad-credential")
	assert.ErrorIs(t, err, ErrInvalidCredential)
	assert.Zero(t, repo.Writes())
}

func TestLogoutClearsSession(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()
	sess := store.For("b")
	profiles := NewProfileCache(8, time.Minute)
	profiles.PutUser(models.User{ID: 3})

	require.NoError(t, sess.Set(ctx, models.Session{Token: "t", Role: models.RoleUser, UserID: 3}))
	require.NoError(t, sess.Put(ctx, models.KeyUser, `{"id":3}`))

	svc := NewAuthService(&fakeAuthAPI{}, nil, profiles, nil)
	require.NoError(t, svc.Logout(ctx, sess))

	assert.True(t, sess.Snapshot(ctx).Anonymous())
	_, ok := sess.Get(ctx, models.KeyUser)
	assert.False(t, ok)
	_, ok = profiles.User(3)
	assert.False(t, ok)
}

func TestVerifyEmailStoresVerifiedEntries(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()
	sess := store.For("b")

	api := &fakeAuthAPI{verification: &backend.VerificationResult{User: &models.User{ID: 4, Email: "v@workoo.io", IsVerified: true}}}
	svc := NewAuthService(api, nil, nil, nil)

	user, err := svc.VerifyEmail(ctx, sess, "verify-token")
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	tok, ok := sess.Get(ctx, models.KeyVerifiedToken)
	require.True(t, ok)
	assert.Equal(t, "verify-token", tok)
	verified, ok := VerifiedUser(ctx, sess)
	require.True(t, ok)
	assert.Equal(t, "v@workoo.io", verified.Email)

	_, ok = StoredUser(ctx, sess)
	assert.False(t, ok)
}

func TestResetPassword(t *testing.T) {
	api := &fakeAuthAPI{}
	svc := NewAuthService(api, nil, nil, nil)

	assert.Error(t, svc.ResetPassword(context.Background(), "", "secret1"))
	require.NoError(t, svc.ResetPassword(context.Background(), "rt", "secret1"))
	assert.Equal(t, "rt", api.resetToken)
	assert.Equal(t, "secret1", api.resetPass)

	api.err = errors.New("expired")
	assert.Error(t, svc.ResetPassword(context.Background(), "rt", "secret1"))
}
