package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workoo-web/internal/core"
	"workoo-web/internal/guard"
	"workoo-web/internal/models"
)

// JobHandler serves the public job listing and the user's applications.
type JobHandler struct {
	*handlers
	api      JobsAPI
	profiles *core.ProfileCache
}

// NewJobHandler creates a JobHandler.
func NewJobHandler(h *handlers, api JobsAPI, profiles *core.ProfileCache) *JobHandler {
	return &JobHandler{handlers: h, api: api, profiles: profiles}
}

// ListJobs handles GET /jobs.
func (h *JobHandler) ListJobs(c *gin.Context) {
	p := h.views.page(c, "Jobs")

	var q core.JobQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		q = core.JobQuery{}
	}
	p.Form = q

	jobs, err := h.api.ListJobs(c.Request.Context())
	if err != nil {
		h.fail(c, "jobs", p, err)
		return
	}
	for _, j := range jobs {
		if j.Company != nil && h.profiles != nil {
			h.profiles.PutCompany(*j.Company)
		}
	}
	p.Data = core.FilterJobs(jobs, q)
	h.views.render(c, http.StatusOK, "jobs", p)
}

// GetJob handles GET /jobs/:id.
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	p := h.views.page(c, "Job")

	job, err := h.api.GetJob(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "job_detail", p, err)
		return
	}
	if job.Company == nil && h.profiles != nil {
		if company, found := h.profiles.Company(job.CompanyID); found {
			job.Company = &company
		}
	}
	p.Title = job.Title
	p.Data = job
	h.views.render(c, http.StatusOK, "job_detail", p)
}

// Apply handles POST /jobs/:id/apply with the CV as multipart form data.
func (h *JobHandler) Apply(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	p := h.views.page(c, "Apply")
	job, err := h.api.GetJob(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "job_detail", p, err)
		return
	}
	p.Title = job.Title
	p.Data = job

	var req models.ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		h.invalid(c, "job_detail", p, err)
		return
	}
	header, err := c.FormFile("cv")
	if err != nil {
		p.Errors = map[string]string{"cv": "Attach your CV."}
		p.Error = "Please correct the highlighted fields."
		h.views.render(c, http.StatusBadRequest, "job_detail", p)
		return
	}
	cv, file, err := upload(header, "cv")
	if err != nil {
		h.fail(c, "job_detail", p, err)
		return
	}
	defer file.Close()

	application, err := h.api.Apply(c.Request.Context(), id, req, cv)
	if err != nil {
		h.fail(c, "job_detail", p, err)
		return
	}
	h.logger.Info("Application submitted", zap.Int("jobId", id), zap.Int("applicationId", application.ID))
	redirect(c, "/applications")
}

// ListApplications handles GET /applications.
func (h *JobHandler) ListApplications(c *gin.Context) {
	p := h.views.page(c, "My applications")
	session := h.currentSession(c)
	if session.UserID == 0 {
		redirect(c, guard.SignInPath)
		return
	}

	applications, err := h.api.ListUserApplications(c.Request.Context(), session.UserID)
	if err != nil {
		h.fail(c, "applications", p, err)
		return
	}
	p.Data = applications
	h.views.render(c, http.StatusOK, "applications", p)
}
