package core

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"workoo-web/internal/backend"
	"workoo-web/internal/models"
)

// SubscriptionChecker classifies the caller's current subscription.
type SubscriptionChecker struct {
	api    SubscriptionAPI
	logger *zap.Logger
	now    func() time.Time
}

// NewSubscriptionChecker creates a SubscriptionChecker.
func NewSubscriptionChecker(api SubscriptionAPI, logger *zap.Logger) *SubscriptionChecker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionChecker{api: api, logger: logger, now: time.Now}
}

// Check never fails: 404, any other error and unrecognised bodies all read as inactive.
func (c *SubscriptionChecker) Check(ctx context.Context) models.SubscriptionStatus {
	body, err := c.api.ActiveSubscription(ctx)
	if err != nil {
		if backend.IsStatus(err, http.StatusNotFound) {
			return models.Inactive
		}
		c.logger.Warn("Active subscription lookup failed, treating as inactive", zap.Error(err))
		return models.Inactive
	}

	payload, err := models.DecodeSubscriptionPayload(body)
	if err != nil {
		c.logger.Warn("Active subscription body not understood, treating as inactive", zap.Error(err))
		return models.Inactive
	}
	return models.NormalizeSubscription(payload, c.now())
}
