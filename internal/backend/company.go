package backend

import (
	"context"
	"net/http"

	"workoo-web/internal/models"
)

// AdminCompany calls GET /company/admin for the company of the signed-in admin.
func (c *Client) AdminCompany(ctx context.Context) (*models.Company, error) {
	var out models.Company
	if err := c.doJSON(ctx, http.MethodGet, "/company/admin", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAdminCompany calls PATCH /company/admin.
func (c *Client) UpdateAdminCompany(ctx context.Context, req models.CompleteProfileRequest) (*models.Company, error) {
	var out models.Company
	if err := c.doJSON(ctx, http.MethodPatch, "/company/admin", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
