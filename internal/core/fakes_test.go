package core

import (
	"context"
	"sync"

	"workoo-web/internal/backend"
	"workoo-web/internal/db"
	"workoo-web/internal/models"
)

// countingRepository records how many writes reach the underlying repository.
type countingRepository struct {
	db.SessionRepository
	mu     sync.Mutex
	writes int
}

func (r *countingRepository) Write(ctx context.Context, browserID string, set map[string]string, remove []string) error {
	r.mu.Lock()
	r.writes++
	r.mu.Unlock()
	return r.SessionRepository.Write(ctx, browserID, set, remove)
}

func (r *countingRepository) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

type fakeKeepAlive struct {
	calls   int
	payload *models.AuthPayload
	err     error
	hook    func(ctx context.Context)
}

func (f *fakeKeepAlive) Keep(ctx context.Context) (*models.AuthPayload, error) {
	f.calls++
	if f.hook != nil {
		f.hook(ctx)
	}
	return f.payload, f.err
}

type fakeSubscriptionAPI struct {
	calls int
	body  string
	err   error
}

func (f *fakeSubscriptionAPI) ActiveSubscription(ctx context.Context) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.body), nil
}

type fakeAuthAPI struct {
	payload      *models.AuthPayload
	err          error
	verification *backend.VerificationResult
	resetToken   string
	resetPass    string
}

func (f *fakeAuthAPI) SignIn(ctx context.Context, req models.SignInRequest) (*models.AuthPayload, error) {
	return f.payload, f.err
}

func (f *fakeAuthAPI) SocialSignIn(ctx context.Context, credential string) (*models.AuthPayload, error) {
	return f.payload, f.err
}

func (f *fakeAuthAPI) VerifyEmail(ctx context.Context, token string) (*backend.VerificationResult, error) {
	return f.verification, f.err
}

func (f *fakeAuthAPI) ResetPassword(ctx context.Context, token, password string) error {
	f.resetToken, f.resetPass = token, password
	return f.err
}

func (f *fakeAuthAPI) ResendVerification(ctx context.Context, email string) error {
	return f.err
}

type fakeDashboardAPI struct {
	mu          sync.Mutex
	company     *models.Company
	jobs        []models.Job
	companyErr  error
	jobsErr     error
	jobsCompany int
}

func (f *fakeDashboardAPI) AdminCompany(ctx context.Context) (*models.Company, error) {
	return f.company, f.companyErr
}

func (f *fakeDashboardAPI) ListCompanyJobs(ctx context.Context, companyID int) ([]models.Job, error) {
	f.mu.Lock()
	f.jobsCompany = companyID
	f.mu.Unlock()
	return f.jobs, f.jobsErr
}

type rejectingValidator struct{ err error }

func (r rejectingValidator) Validate(ctx context.Context, credential string) error { return r.err }

func intPtr(v int) *int { return &v }

func newTestStore() (*TokenStore, *countingRepository) {
	repo := &countingRepository{SessionRepository: db.NewMemorySessionRepository(0)}
	return NewTokenStore(repo, nil), repo
}
