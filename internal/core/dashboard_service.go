package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"workoo-web/internal/models"
)

// AdminDashboard is what the company admin landing page renders.
type AdminDashboard struct {
	Company        *models.Company
	Jobs           []models.Job
	PublishedCount int
	Subscription   models.SubscriptionStatus
}

// DashboardService assembles the admin dashboard from independent backend reads.
type DashboardService struct {
	api           DashboardAPI
	subscriptions *SubscriptionChecker
	profiles      *ProfileCache
	logger        *zap.Logger
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(api DashboardAPI, subscriptions *SubscriptionChecker, profiles *ProfileCache, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{api: api, subscriptions: subscriptions, profiles: profiles, logger: logger}
}

// Load fetches company, jobs and subscription concurrently. When the session
// carries no company id, jobs are fetched after the company is known.
func (s *DashboardService) Load(ctx context.Context, session models.Session) (*AdminDashboard, error) {
	var dash AdminDashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		dash.Subscription = s.subscriptions.Check(gctx)
		return nil
	})

	if session.CompanyID != nil {
		companyID := *session.CompanyID
		g.Go(func() error {
			company, err := s.api.AdminCompany(gctx)
			if err != nil {
				return fmt.Errorf("load company: %w", err)
			}
			dash.Company = company
			return nil
		})
		g.Go(func() error {
			jobs, err := s.api.ListCompanyJobs(gctx, companyID)
			if err != nil {
				return fmt.Errorf("load jobs of company %d: %w", companyID, err)
			}
			dash.Jobs = jobs
			return nil
		})
	} else {
		g.Go(func() error {
			company, err := s.api.AdminCompany(gctx)
			if err != nil {
				return fmt.Errorf("load company: %w", err)
			}
			dash.Company = company
			jobs, err := s.api.ListCompanyJobs(gctx, company.ID)
			if err != nil {
				return fmt.Errorf("load jobs of company %d: %w", company.ID, err)
			}
			dash.Jobs = jobs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, j := range dash.Jobs {
		if j.Status == models.JobStatusPublished {
			dash.PublishedCount++
		}
	}
	if s.profiles != nil && dash.Company != nil {
		s.profiles.PutCompany(*dash.Company)
	}
	return &dash, nil
}
