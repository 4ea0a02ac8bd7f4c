package backend

import (
	"context"
	"net/http"

	"workoo-web/internal/models"
)

// ActiveSubscription calls GET /subscription/my-active-subscription and returns
// the raw body. The body has more than one shape; see models.DecodeSubscriptionPayload.
func (c *Client) ActiveSubscription(ctx context.Context) ([]byte, error) {
	return c.send(ctx, http.MethodGet, "/subscription/my-active-subscription", nil, "")
}

// MySubscriptions calls GET /subscription/my-subscriptions.
func (c *Client) MySubscriptions(ctx context.Context) ([]models.SubscriptionRecord, error) {
	var out []models.SubscriptionRecord
	if err := c.doJSON(ctx, http.MethodGet, "/subscription/my-subscriptions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
