package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workoo-web/internal/core"
	"workoo-web/internal/guard"
	"workoo-web/internal/models"
)

// AdminHandler serves the company admin area.
type AdminHandler struct {
	*handlers
	api       CompanyAPI
	dashboard *core.DashboardService
	profiles  *core.ProfileCache
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(h *handlers, api CompanyAPI, dashboard *core.DashboardService, profiles *core.ProfileCache) *AdminHandler {
	return &AdminHandler{handlers: h, api: api, dashboard: dashboard, profiles: profiles}
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	p := h.views.page(c, "Dashboard")
	dash, err := h.dashboard.Load(c.Request.Context(), h.currentSession(c))
	if err != nil {
		h.fail(c, "admin_dashboard", p, err)
		return
	}
	p.Data = dash
	h.views.render(c, http.StatusOK, "admin_dashboard", p)
}

// CompleteProfileForm handles GET /admin/complete-profile.
func (h *AdminHandler) CompleteProfileForm(c *gin.Context) {
	p := h.views.page(c, "Complete your company profile")
	company, err := h.api.AdminCompany(c.Request.Context())
	if err != nil {
		h.fail(c, "complete_profile", p, err)
		return
	}
	p.Form = models.CompleteProfileRequest{
		Name:        company.Name,
		Description: company.Description,
		Location:    company.Location,
		Website:     company.Website,
		Phone:       company.Phone,
	}
	h.views.render(c, http.StatusOK, "complete_profile", p)
}

// CompleteProfile handles POST /admin/complete-profile. On success the stored
// session is marked complete so the Admin guard lets the dashboard through.
func (h *AdminHandler) CompleteProfile(c *gin.Context) {
	p := h.views.page(c, "Complete your company profile")

	var req models.CompleteProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		p.Form = req
		h.invalid(c, "complete_profile", p, err)
		return
	}
	p.Form = req

	ctx := c.Request.Context()
	company, err := h.api.UpdateAdminCompany(ctx, req)
	if err != nil {
		h.fail(c, "complete_profile", p, err)
		return
	}
	if h.profiles != nil {
		h.profiles.PutCompany(*company)
	}

	sess, ok := h.session(c)
	if !ok {
		RenderScreen(c, http.StatusServiceUnavailable, guard.ScreenUnavailable)
		return
	}
	next := h.currentSession(c)
	next.ProfileComplete = true
	if company.ID != 0 {
		companyID := company.ID
		next.CompanyID = &companyID
	}
	if err := sess.Set(ctx, next); err != nil {
		h.fail(c, "complete_profile", p, err)
		return
	}
	h.logger.Info("Company profile completed", zap.Int("companyId", company.ID))
	redirect(c, guard.AdminLandingPath)
}

// companyID resolves the admin's company from the session, falling back to the backend.
func (h *AdminHandler) companyID(c *gin.Context) (int, error) {
	if s := h.currentSession(c); s.CompanyID != nil {
		return *s.CompanyID, nil
	}
	company, err := h.api.AdminCompany(c.Request.Context())
	if err != nil {
		return 0, err
	}
	return company.ID, nil
}

// ListJobs handles GET /admin/jobs.
func (h *AdminHandler) ListJobs(c *gin.Context) {
	p := h.views.page(c, "Job postings")
	companyID, err := h.companyID(c)
	if err != nil {
		h.fail(c, "admin_jobs", p, err)
		return
	}
	jobs, err := h.api.ListCompanyJobs(c.Request.Context(), companyID)
	if err != nil {
		h.fail(c, "admin_jobs", p, err)
		return
	}
	p.Data = jobs
	h.views.render(c, http.StatusOK, "admin_jobs", p)
}

// NewJobForm handles GET /admin/jobs/new.
func (h *AdminHandler) NewJobForm(c *gin.Context) {
	p := h.views.page(c, "New job")
	p.Form = models.JobInput{JobType: "FULL_TIME"}
	h.views.render(c, http.StatusOK, "admin_job_form", p)
}

// CreateJob handles POST /admin/jobs.
func (h *AdminHandler) CreateJob(c *gin.Context) {
	p := h.views.page(c, "New job")

	var in models.JobInput
	if err := c.ShouldBind(&in); err != nil {
		p.Form = in
		h.invalid(c, "admin_job_form", p, err)
		return
	}
	in = normalizeJobInput(in)
	p.Form = in

	companyID, err := h.companyID(c)
	if err != nil {
		h.fail(c, "admin_job_form", p, err)
		return
	}
	job, err := h.api.CreateCompanyJob(c.Request.Context(), companyID, in)
	if err != nil {
		h.fail(c, "admin_job_form", p, err)
		return
	}
	h.logger.Info("Job created", zap.Int("companyId", companyID), zap.Int("jobId", job.ID))
	redirect(c, "/admin/jobs")
}

// EditJobForm handles GET /admin/jobs/:id/edit.
func (h *AdminHandler) EditJobForm(c *gin.Context) {
	jobID, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	p := h.views.page(c, "Edit job")
	companyID, err := h.companyID(c)
	if err != nil {
		h.fail(c, "admin_job_form", p, err)
		return
	}
	job, err := h.api.GetCompanyJob(c.Request.Context(), companyID, jobID)
	if err != nil {
		h.fail(c, "admin_job_form", p, err)
		return
	}
	p.Data = job
	p.Form = models.JobInput{
		Title:       job.Title,
		Description: job.Description,
		Category:    job.Category,
		Location:    job.Location,
		JobType:     job.JobType,
		SalaryMin:   job.SalaryMin,
		SalaryMax:   job.SalaryMax,
		Deadline:    job.Deadline,
	}
	h.views.render(c, http.StatusOK, "admin_job_form", p)
}

// UpdateJob handles POST /admin/jobs/:id.
func (h *AdminHandler) UpdateJob(c *gin.Context) {
	jobID, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	p := h.views.page(c, "Edit job")
	p.Data = &models.Job{ID: jobID}

	var in models.JobInput
	if err := c.ShouldBind(&in); err != nil {
		p.Form = in
		h.invalid(c, "admin_job_form", p, err)
		return
	}
	in = normalizeJobInput(in)
	p.Form = in

	companyID, err := h.companyID(c)
	if err != nil {
		h.fail(c, "admin_job_form", p, err)
		return
	}
	if _, err := h.api.UpdateCompanyJob(c.Request.Context(), companyID, jobID, in); err != nil {
		h.fail(c, "admin_job_form", p, err)
		return
	}
	redirect(c, "/admin/jobs")
}

// SetPublished handles POST /admin/jobs/:id/publish with a published=true|false field.
func (h *AdminHandler) SetPublished(c *gin.Context) {
	jobID, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	p := h.views.page(c, "Job postings")
	published, err := strconv.ParseBool(c.PostForm("published"))
	if err != nil {
		p.Error = "Choose whether the job is published."
		h.views.render(c, http.StatusBadRequest, "admin_jobs", p)
		return
	}

	companyID, err := h.companyID(c)
	if err != nil {
		h.fail(c, "admin_jobs", p, err)
		return
	}
	if _, err := h.api.SetJobPublished(c.Request.Context(), companyID, jobID, published); err != nil {
		h.fail(c, "admin_jobs", p, err)
		return
	}
	redirect(c, "/admin/jobs")
}

// DeleteJob handles POST /admin/jobs/:id/delete.
func (h *AdminHandler) DeleteJob(c *gin.Context) {
	jobID, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	p := h.views.page(c, "Job postings")
	companyID, err := h.companyID(c)
	if err != nil {
		h.fail(c, "admin_jobs", p, err)
		return
	}
	if err := h.api.DeleteCompanyJob(c.Request.Context(), companyID, jobID); err != nil {
		h.fail(c, "admin_jobs", p, err)
		return
	}
	h.logger.Info("Job deleted", zap.Int("companyId", companyID), zap.Int("jobId", jobID))
	redirect(c, "/admin/jobs")
}

// normalizeJobInput turns empty optional form fields back into "not provided".
func normalizeJobInput(in models.JobInput) models.JobInput {
	if in.Deadline != nil && in.Deadline.IsZero() {
		in.Deadline = nil
	}
	if in.SalaryMin != nil && *in.SalaryMin == 0 {
		in.SalaryMin = nil
	}
	if in.SalaryMax != nil && *in.SalaryMax == 0 {
		in.SalaryMax = nil
	}
	return in
}
