package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"workoo-web/internal/models"
)

// Apply calls POST /application/{jobId} with the CV as multipart form data.
func (c *Client) Apply(ctx context.Context, jobID int, req models.ApplyRequest, cv FileUpload) (*models.Application, error) {
	fields := map[string]string{}
	if req.ExpectedSalary != nil {
		fields["expectedSalary"] = strconv.Itoa(*req.ExpectedSalary)
	}
	if cv.FieldName == "" {
		cv.FieldName = "cv"
	}
	var out models.Application
	path := fmt.Sprintf("/application/%d", jobID)
	if err := c.doMultipart(ctx, http.MethodPost, path, fields, []FileUpload{cv}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUserApplications calls GET /application/user/{userId}.
func (c *Client) ListUserApplications(ctx context.Context, userID int) ([]models.Application, error) {
	var out []models.Application
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/application/user/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
