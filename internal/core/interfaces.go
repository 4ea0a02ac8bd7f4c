package core

import (
	"context"

	"workoo-web/internal/backend"
	"workoo-web/internal/models"
)

// SessionContext is the injected, browser-scoped view of the Token Store.
// Components read and write the session only through it.
type SessionContext interface {
	BrowserID() string
	// Get returns the entry for key. Storage failures read as absent.
	Get(ctx context.Context, key string) (string, bool)
	// Set overwrites the five session entries in one write.
	Set(ctx context.Context, session models.Session) error
	// Put writes one auxiliary entry; an empty value removes it.
	Put(ctx context.Context, key, value string) error
	// Clear removes every session-related entry in one write.
	Clear(ctx context.Context) error
	// Snapshot decodes the stored session; without a token it is anonymous.
	Snapshot(ctx context.Context) models.Session
	// Subscribe registers fn for changes to this browser's entries.
	Subscribe(fn func(ChangeEvent)) (unsubscribe func())
}

// KeepAliveAPI is the backend surface used by the SessionVerifier.
type KeepAliveAPI interface {
	Keep(ctx context.Context) (*models.AuthPayload, error)
}

// SubscriptionAPI is the backend surface used by the SubscriptionChecker.
type SubscriptionAPI interface {
	ActiveSubscription(ctx context.Context) ([]byte, error)
}

// AuthAPI is the backend surface used by the AuthService.
type AuthAPI interface {
	SignIn(ctx context.Context, req models.SignInRequest) (*models.AuthPayload, error)
	SocialSignIn(ctx context.Context, credential string) (*models.AuthPayload, error)
	VerifyEmail(ctx context.Context, token string) (*backend.VerificationResult, error)
	ResetPassword(ctx context.Context, token, password string) error
	ResendVerification(ctx context.Context, email string) error
}

// DashboardAPI is the backend surface used by the DashboardService.
type DashboardAPI interface {
	AdminCompany(ctx context.Context) (*models.Company, error)
	ListCompanyJobs(ctx context.Context, companyID int) ([]models.Job, error)
}

// CredentialValidator checks a social sign-in credential before it is forwarded.
type CredentialValidator interface {
	Validate(ctx context.Context, credential string) error
}
