package backend

import (
	"context"
	"fmt"
	"net/http"

	"workoo-web/internal/models"
)

func assessmentPath(id int) string {
	return fmt.Sprintf("/skill-assessment/%d", id)
}

// ListAssessments calls GET /skill-assessment.
func (c *Client) ListAssessments(ctx context.Context) ([]models.SkillAssessment, error) {
	var out []models.SkillAssessment
	if err := c.doJSON(ctx, http.MethodGet, "/skill-assessment", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAssessment calls GET /skill-assessment/{id}.
func (c *Client) GetAssessment(ctx context.Context, id int) (*models.SkillAssessment, error) {
	var out models.SkillAssessment
	if err := c.doJSON(ctx, http.MethodGet, assessmentPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAssessment calls POST /skill-assessment.
func (c *Client) CreateAssessment(ctx context.Context, in models.AssessmentInput) (*models.SkillAssessment, error) {
	var out models.SkillAssessment
	if err := c.doJSON(ctx, http.MethodPost, "/skill-assessment", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAssessment calls PATCH /skill-assessment/{id}.
func (c *Client) UpdateAssessment(ctx context.Context, id int, in models.AssessmentInput) (*models.SkillAssessment, error) {
	var out models.SkillAssessment
	if err := c.doJSON(ctx, http.MethodPatch, assessmentPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAssessment calls DELETE /skill-assessment/{id}.
func (c *Client) DeleteAssessment(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, assessmentPath(id), nil, nil)
}

// SubmitAssessment calls POST /skill-assessment/{id}/submit.
func (c *Client) SubmitAssessment(ctx context.Context, id int, answers []models.AssessmentAnswer) (*models.AssessmentResult, error) {
	var out models.AssessmentResult
	body := map[string]interface{}{"answers": answers}
	if err := c.doJSON(ctx, http.MethodPost, assessmentPath(id)+"/submit", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadBadge calls POST /skill-assessment/{id}/badge with the icon as multipart form data.
func (c *Client) UploadBadge(ctx context.Context, id int, icon FileUpload) (*models.SkillAssessment, error) {
	if icon.FieldName == "" {
		icon.FieldName = "badgeIcon"
	}
	var out models.SkillAssessment
	if err := c.doMultipart(ctx, http.MethodPost, assessmentPath(id)+"/badge", nil, []FileUpload{icon}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
