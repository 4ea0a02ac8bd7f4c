package backend

import (
	"context"
	"fmt"
	"net/http"

	"workoo-web/internal/models"
)

func companyJobsPath(companyID int) string {
	return fmt.Sprintf("/job/companies/%d/jobs", companyID)
}

// ListJobs calls GET /job for the public job listing.
func (c *Client) ListJobs(ctx context.Context) ([]models.Job, error) {
	var out []models.Job
	if err := c.doJSON(ctx, http.MethodGet, "/job", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetJob calls GET /job/{jobId}.
func (c *Client) GetJob(ctx context.Context, jobID int) (*models.Job, error) {
	var out models.Job
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/job/%d", jobID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCompanyJobs calls GET /job/companies/{companyId}/jobs.
func (c *Client) ListCompanyJobs(ctx context.Context, companyID int) ([]models.Job, error) {
	var out []models.Job
	if err := c.doJSON(ctx, http.MethodGet, companyJobsPath(companyID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCompanyJob calls GET /job/companies/{companyId}/jobs/{jobId}.
func (c *Client) GetCompanyJob(ctx context.Context, companyID, jobID int) (*models.Job, error) {
	var out models.Job
	path := fmt.Sprintf("%s/%d", companyJobsPath(companyID), jobID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCompanyJob calls POST /job/companies/{companyId}/jobs.
func (c *Client) CreateCompanyJob(ctx context.Context, companyID int, in models.JobInput) (*models.Job, error) {
	var out models.Job
	if err := c.doJSON(ctx, http.MethodPost, companyJobsPath(companyID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCompanyJob calls PUT /job/companies/{companyId}/jobs/{jobId}.
func (c *Client) UpdateCompanyJob(ctx context.Context, companyID, jobID int, in models.JobInput) (*models.Job, error) {
	var out models.Job
	path := fmt.Sprintf("%s/%d", companyJobsPath(companyID), jobID)
	if err := c.doJSON(ctx, http.MethodPut, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetJobPublished calls PATCH /job/companies/{companyId}/jobs/{jobId}/publish.
func (c *Client) SetJobPublished(ctx context.Context, companyID, jobID int, published bool) (*models.Job, error) {
	var out models.Job
	path := fmt.Sprintf("%s/%d/publish", companyJobsPath(companyID), jobID)
	if err := c.doJSON(ctx, http.MethodPatch, path, map[string]bool{"published": published}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCompanyJob calls DELETE /job/companies/{companyId}/jobs/{jobId}.
func (c *Client) DeleteCompanyJob(ctx context.Context, companyID, jobID int) error {
	path := fmt.Sprintf("%s/%d", companyJobsPath(companyID), jobID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
