package api

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workoo-web/internal/backend"
	"workoo-web/internal/core"
	"workoo-web/internal/guard"
	"workoo-web/internal/models"
)

// JobsAPI is the backend surface behind the public job pages.
type JobsAPI interface {
	ListJobs(ctx context.Context) ([]models.Job, error)
	GetJob(ctx context.Context, jobID int) (*models.Job, error)
	Apply(ctx context.Context, jobID int, req models.ApplyRequest, cv backend.FileUpload) (*models.Application, error)
	ListUserApplications(ctx context.Context, userID int) ([]models.Application, error)
}

// CompanyAPI is the backend surface behind the admin area.
type CompanyAPI interface {
	AdminCompany(ctx context.Context) (*models.Company, error)
	UpdateAdminCompany(ctx context.Context, req models.CompleteProfileRequest) (*models.Company, error)
	ListCompanyJobs(ctx context.Context, companyID int) ([]models.Job, error)
	GetCompanyJob(ctx context.Context, companyID, jobID int) (*models.Job, error)
	CreateCompanyJob(ctx context.Context, companyID int, in models.JobInput) (*models.Job, error)
	UpdateCompanyJob(ctx context.Context, companyID, jobID int, in models.JobInput) (*models.Job, error)
	SetJobPublished(ctx context.Context, companyID, jobID int, published bool) (*models.Job, error)
	DeleteCompanyJob(ctx context.Context, companyID, jobID int) error
}

// SubscriptionsAPI lists the caller's subscription history.
type SubscriptionsAPI interface {
	MySubscriptions(ctx context.Context) ([]models.SubscriptionRecord, error)
}

// AssessmentsAPI is the backend surface behind premium and developer assessment pages.
type AssessmentsAPI interface {
	ListAssessments(ctx context.Context) ([]models.SkillAssessment, error)
	GetAssessment(ctx context.Context, id int) (*models.SkillAssessment, error)
	CreateAssessment(ctx context.Context, in models.AssessmentInput) (*models.SkillAssessment, error)
	UpdateAssessment(ctx context.Context, id int, in models.AssessmentInput) (*models.SkillAssessment, error)
	DeleteAssessment(ctx context.Context, id int) error
	SubmitAssessment(ctx context.Context, id int, answers []models.AssessmentAnswer) (*models.AssessmentResult, error)
	UploadBadge(ctx context.Context, id int, icon backend.FileUpload) (*models.SkillAssessment, error)
}

// ReviewsAPI is the backend surface behind company review pages.
type ReviewsAPI interface {
	ReviewStats(ctx context.Context, companyID int) (*models.ReviewStats, error)
	ReviewEligibility(ctx context.Context, companyID int) (*models.ReviewEligibility, error)
}

// Backend is everything the pages call on the Workoo API. *backend.Client satisfies it.
type Backend interface {
	JobsAPI
	CompanyAPI
	SubscriptionsAPI
	AssessmentsAPI
	ReviewsAPI
}

// handlers carries what every page handler needs.
type handlers struct {
	views  *Views
	logger *zap.Logger
}

// session returns the SessionContext bound by the browser-session middleware.
func (h *handlers) session(c *gin.Context) (core.SessionContext, bool) {
	sess, ok := core.SessionFrom(c.Request.Context())
	if !ok {
		h.logger.Error("No session bound to request", zap.String("path", c.Request.URL.Path))
	}
	return sess, ok
}

// currentSession prefers the session a guard admitted the request with.
func (h *handlers) currentSession(c *gin.Context) models.Session {
	if s, ok := guard.VerifiedSession(c); ok {
		return s
	}
	if sess, ok := core.SessionFrom(c.Request.Context()); ok {
		return sess.Snapshot(c.Request.Context())
	}
	return models.Session{}
}

// paramID parses a positive integer path parameter. It renders 404 on failure.
func (h *handlers) paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		h.views.render(c, http.StatusNotFound, "not_found", h.views.page(c, "Not found"))
		c.Abort()
		return 0, false
	}
	return id, true
}

// upload converts a received form file into a backend.FileUpload. The caller closes the file.
func upload(header *multipart.FileHeader, field string) (backend.FileUpload, multipart.File, error) {
	f, err := header.Open()
	if err != nil {
		return backend.FileUpload{}, nil, fmt.Errorf("failed to open uploaded %s: %w", field, err)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return backend.FileUpload{
		FieldName:   field,
		FileName:    header.Filename,
		ContentType: contentType,
		Content:     f,
	}, f, nil
}
