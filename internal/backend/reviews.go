package backend

import (
	"context"
	"fmt"
	"net/http"

	"workoo-web/internal/models"
)

// ReviewStats calls GET /reviews/companies/{id}/reviews/stats.
func (c *Client) ReviewStats(ctx context.Context, companyID int) (*models.ReviewStats, error) {
	var out models.ReviewStats
	path := fmt.Sprintf("/reviews/companies/%d/reviews/stats", companyID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReviewEligibility calls GET /reviews/companies/{id}/reviews/eligibility.
func (c *Client) ReviewEligibility(ctx context.Context, companyID int) (*models.ReviewEligibility, error) {
	var out models.ReviewEligibility
	path := fmt.Sprintf("/reviews/companies/%d/reviews/eligibility", companyID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
