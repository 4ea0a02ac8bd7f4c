package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workoo-web/internal/core"
	"workoo-web/internal/models"
)

// ReviewHandler serves company review summaries.
type ReviewHandler struct {
	*handlers
	api      ReviewsAPI
	profiles *core.ProfileCache
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(h *handlers, api ReviewsAPI, profiles *core.ProfileCache) *ReviewHandler {
	return &ReviewHandler{handlers: h, api: api, profiles: profiles}
}

type companyReviews struct {
	Company     *models.Company
	Stats       *models.ReviewStats
	Eligibility *models.ReviewEligibility
}

// CompanyReviews handles GET /companies/:id/reviews. Eligibility is only asked
// for signed-in browsers; failing to get it hides the review call to action.
func (h *ReviewHandler) CompanyReviews(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	p := h.views.page(c, "Company reviews")
	ctx := c.Request.Context()

	stats, err := h.api.ReviewStats(ctx, id)
	if err != nil {
		h.fail(c, "company_reviews", p, err)
		return
	}
	data := companyReviews{Stats: stats}
	if h.profiles != nil {
		if company, found := h.profiles.Company(id); found {
			data.Company = &company
		}
	}
	if p.SignedIn() {
		eligibility, err := h.api.ReviewEligibility(ctx, id)
		if err != nil {
			h.logger.Info("Review eligibility unavailable", zap.Int("companyId", id), zap.Error(err))
		} else {
			data.Eligibility = eligibility
		}
	}
	p.Data = data
	h.views.render(c, http.StatusOK, "company_reviews", p)
}
