package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workoo-web/internal/core"
	"workoo-web/internal/guard"
	"workoo-web/internal/models"
)

// SubscriptionHandler serves the subscription overview and the premium pages.
type SubscriptionHandler struct {
	*handlers
	api         SubscriptionsAPI
	assessments AssessmentsAPI
	checker     *core.SubscriptionChecker
}

// NewSubscriptionHandler creates a SubscriptionHandler.
func NewSubscriptionHandler(h *handlers, api SubscriptionsAPI, assessments AssessmentsAPI, checker *core.SubscriptionChecker) *SubscriptionHandler {
	return &SubscriptionHandler{handlers: h, api: api, assessments: assessments, checker: checker}
}

type subscriptionOverview struct {
	Status  models.SubscriptionStatus
	History []models.SubscriptionRecord
}

// Overview handles GET /subscription.
func (h *SubscriptionHandler) Overview(c *gin.Context) {
	p := h.views.page(c, "Subscription")
	ctx := c.Request.Context()

	history, err := h.api.MySubscriptions(ctx)
	if err != nil {
		h.fail(c, "subscription", p, err)
		return
	}
	p.Data = subscriptionOverview{Status: h.checker.Check(ctx), History: history}
	h.views.render(c, http.StatusOK, "subscription", p)
}

type premiumCV struct {
	Status models.SubscriptionStatus
	User   *models.User
}

// CV handles GET /premium/cv.
func (h *SubscriptionHandler) CV(c *gin.Context) {
	p := h.views.page(c, "CV generator")
	status, _ := guard.Subscription(c)
	p.Data = premiumCV{Status: status, User: p.User}
	h.views.render(c, http.StatusOK, "premium_cv", p)
}

// ListAssessments handles GET /premium/assessments.
func (h *SubscriptionHandler) ListAssessments(c *gin.Context) {
	p := h.views.page(c, "Skill assessments")
	list, err := h.assessments.ListAssessments(c.Request.Context())
	if err != nil {
		h.fail(c, "premium_assessments", p, err)
		return
	}
	p.Data = list
	h.views.render(c, http.StatusOK, "premium_assessments", p)
}

// TakeAssessment handles GET /premium/assessments/:id.
func (h *SubscriptionHandler) TakeAssessment(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	p := h.views.page(c, "Skill assessment")
	assessment, err := h.assessments.GetAssessment(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "premium_assessment", p, err)
		return
	}
	p.Title = assessment.Title
	p.Data = assessmentAttempt{Assessment: assessment}
	h.views.render(c, http.StatusOK, "premium_assessment", p)
}

type assessmentAttempt struct {
	Assessment *models.SkillAssessment
	Result     *models.AssessmentResult
}

// SubmitAssessment handles POST /premium/assessments/:id. Each question is
// answered by a form field named q<questionId> holding the option index.
func (h *SubscriptionHandler) SubmitAssessment(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	p := h.views.page(c, "Skill assessment")
	ctx := c.Request.Context()

	assessment, err := h.assessments.GetAssessment(ctx, id)
	if err != nil {
		h.fail(c, "premium_assessment", p, err)
		return
	}
	p.Title = assessment.Title
	p.Data = assessmentAttempt{Assessment: assessment}

	answers, missing := collectAnswers(c, assessment.Questions)
	if len(missing) > 0 {
		p.Errors = missing
		p.Error = "Answer every question before submitting."
		h.views.render(c, http.StatusBadRequest, "premium_assessment", p)
		return
	}

	result, err := h.assessments.SubmitAssessment(ctx, id, answers)
	if err != nil {
		h.fail(c, "premium_assessment", p, err)
		return
	}
	p.Data = assessmentAttempt{Assessment: assessment, Result: result}
	h.views.render(c, http.StatusOK, "premium_assessment", p)
}
