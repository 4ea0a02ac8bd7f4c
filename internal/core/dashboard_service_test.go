package core

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"workoo-web/internal/backend"
	"workoo-web/internal/models"
)

func TestDashboardLoad(t *testing.T) {
	api := &fakeDashboardAPI{
		company: &models.Company{ID: 5, Name: "Workoo", IsProfileComplete: true},
		jobs: []models.Job{
			{ID: 1, Status: models.JobStatusPublished},
			{ID: 2, Status: models.JobStatusDraft},
			{ID: 3, Status: models.JobStatusPublished},
		},
	}
	subs := NewSubscriptionChecker(&fakeSubscriptionAPI{body: `{"isActive":true}`}, nil)
	profiles := NewProfileCache(4, time.Minute)
	svc := NewDashboardService(api, subs, profiles, zaptest.NewLogger(t))

	dash, err := svc.Load(context.Background(), models.Session{Token: "t", Role: models.RoleAdmin, CompanyID: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, "Workoo", dash.Company.Name)
	assert.Len(t, dash.Jobs, 3)
	assert.Equal(t, 2, dash.PublishedCount)
	assert.True(t, dash.Subscription.Active)
	assert.Equal(t, 5, api.jobsCompany)

	_, ok := profiles.Company(5)
	assert.True(t, ok)
}

func TestDashboardLoadResolvesCompanyFirst(t *testing.T) {
	api := &fakeDashboardAPI{company: &models.Company{ID: 8}}
	subs := NewSubscriptionChecker(&fakeSubscriptionAPI{body: `{"isActive":false}`}, nil)
	svc := NewDashboardService(api, subs, nil, nil)

	dash, err := svc.Load(context.Background(), models.Session{Token: "t", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, 8, api.jobsCompany)
	assert.False(t, dash.Subscription.Active)
}

func TestDashboardLoadFailure(t *testing.T) {
	api := &fakeDashboardAPI{
		company: &models.Company{ID: 5},
		jobsErr: &backend.APIError{Method: http.MethodGet, Path: "/company/5/jobs", Status: http.StatusInternalServerError},
	}
	subs := NewSubscriptionChecker(&fakeSubscriptionAPI{body: `{"isActive":true}`}, nil)
	svc := NewDashboardService(api, subs, nil, nil)

	_, err := svc.Load(context.Background(), models.Session{Token: "t", Role: models.RoleAdmin, CompanyID: intPtr(5)})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, backend.StatusOf(err))
}
