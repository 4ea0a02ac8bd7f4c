package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workoo-web/internal/models"
)

// DeveloperHandler serves skill assessment management for DEVELOPER accounts.
type DeveloperHandler struct {
	*handlers
	api AssessmentsAPI
}

// NewDeveloperHandler creates a DeveloperHandler.
func NewDeveloperHandler(h *handlers, api AssessmentsAPI) *DeveloperHandler {
	return &DeveloperHandler{handlers: h, api: api}
}

// Home handles GET /developer.
func (h *DeveloperHandler) Home(c *gin.Context) {
	p := h.views.page(c, "Assessments")
	list, err := h.api.ListAssessments(c.Request.Context())
	if err != nil {
		h.fail(c, "developer", p, err)
		return
	}
	p.Data = list
	h.views.render(c, http.StatusOK, "developer", p)
}

// NewForm handles GET /developer/assessments/new.
func (h *DeveloperHandler) NewForm(c *gin.Context) {
	p := h.views.page(c, "New assessment")
	p.Form = models.AssessmentInput{PassingScore: 70}
	h.views.render(c, http.StatusOK, "developer_form", p)
}

// Create handles POST /developer/assessments.
func (h *DeveloperHandler) Create(c *gin.Context) {
	p := h.views.page(c, "New assessment")

	var in models.AssessmentInput
	if err := c.ShouldBind(&in); err != nil {
		p.Form = in
		h.invalid(c, "developer_form", p, err)
		return
	}
	p.Form = in

	created, err := h.api.CreateAssessment(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "developer_form", p, err)
		return
	}
	h.logger.Info("Assessment created", zap.Int("assessmentId", created.ID))
	redirect(c, "/developer")
}

// EditForm handles GET /developer/assessments/:id/edit.
func (h *DeveloperHandler) EditForm(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	p := h.views.page(c, "Edit assessment")
	assessment, err := h.api.GetAssessment(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "developer_form", p, err)
		return
	}
	p.Data = assessment
	p.Form = models.AssessmentInput{
		Title:        assessment.Title,
		Description:  assessment.Description,
		PassingScore: assessment.PassingScore,
	}
	h.views.render(c, http.StatusOK, "developer_form", p)
}

// Update handles POST /developer/assessments/:id.
func (h *DeveloperHandler) Update(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	p := h.views.page(c, "Edit assessment")
	p.Data = &models.SkillAssessment{ID: id}

	var in models.AssessmentInput
	if err := c.ShouldBind(&in); err != nil {
		p.Form = in
		h.invalid(c, "developer_form", p, err)
		return
	}
	p.Form = in

	if _, err := h.api.UpdateAssessment(c.Request.Context(), id, in); err != nil {
		h.fail(c, "developer_form", p, err)
		return
	}
	redirect(c, "/developer")
}

// Delete handles POST /developer/assessments/:id/delete.
func (h *DeveloperHandler) Delete(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	p := h.views.page(c, "Assessments")
	if err := h.api.DeleteAssessment(c.Request.Context(), id); err != nil {
		h.fail(c, "developer", p, err)
		return
	}
	h.logger.Info("Assessment deleted", zap.Int("assessmentId", id))
	redirect(c, "/developer")
}

// UploadBadge handles POST /developer/assessments/:id/badge with a badgeIcon file.
func (h *DeveloperHandler) UploadBadge(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	p := h.views.page(c, "Edit assessment")
	p.Data = &models.SkillAssessment{ID: id}

	header, err := c.FormFile("badgeIcon")
	if err != nil {
		p.Errors = map[string]string{"badgeIcon": "Choose an image to upload."}
		p.Error = "Please correct the highlighted fields."
		h.views.render(c, http.StatusBadRequest, "developer_form", p)
		return
	}
	icon, file, err := upload(header, "badgeIcon")
	if err != nil {
		h.fail(c, "developer_form", p, err)
		return
	}
	defer file.Close()

	if _, err := h.api.UploadBadge(c.Request.Context(), id, icon); err != nil {
		h.fail(c, "developer_form", p, err)
		return
	}
	redirect(c, "/developer")
}
