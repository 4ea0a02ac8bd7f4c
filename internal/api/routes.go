package api

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"workoo-web/internal/config"
	"workoo-web/internal/core"
	"workoo-web/internal/guard"
)

// Dependencies are the services the page routes are built from.
type Dependencies struct {
	Config        *config.Config
	Logger        *zap.Logger
	Backend       Backend
	Auth          *core.AuthService
	Dashboard     *core.DashboardService
	Subscriptions *core.SubscriptionChecker
	Profiles      *core.ProfileCache
	Guards        *guard.Guards
}

// SetupRoutes registers every page route with its guard. Global middleware
// (logging, recovery, CORS, browser session) is expected on router already.
func SetupRoutes(router *gin.Engine, deps Dependencies) error {
	tmpl, err := LoadTemplates()
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)
	useFormFieldNames()

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	base := &handlers{
		views:  NewViews(deps.Config.GoogleClientID, deps.Config.OpenCageKey, deps.Profiles),
		logger: logger,
	}
	g := deps.Guards

	authHandler := NewAuthHandler(base, deps.Auth)
	jobHandler := NewJobHandler(base, deps.Backend, deps.Profiles)
	adminHandler := NewAdminHandler(base, deps.Backend, deps.Dashboard, deps.Profiles)
	subscriptionHandler := NewSubscriptionHandler(base, deps.Backend, deps.Backend, deps.Subscriptions)
	developerHandler := NewDeveloperHandler(base, deps.Backend)
	reviewHandler := NewReviewHandler(base, deps.Backend, deps.Profiles)

	router.GET("/", g.PublicOnly(), func(c *gin.Context) {
		base.views.render(c, http.StatusOK, "home", base.views.page(c, "Workoo"))
	})

	// Logout must stay reachable while signed in, so it sits outside the auth group.
	router.POST("/auth/logout", authHandler.Logout)

	authGroup := router.Group("/auth", g.AuthRedirect())
	{
		authGroup.GET("/signin", authHandler.SignInForm)
		authGroup.POST("/signin", authHandler.SignIn)
		authGroup.POST("/social", authHandler.SocialSignIn)
		authGroup.GET("/verify/:token", authHandler.VerifyEmail)
		authGroup.GET("/reset-password/:token", authHandler.ResetPasswordForm)
		authGroup.POST("/reset-password/:token", authHandler.ResetPassword)
		authGroup.POST("/resend-verification", authHandler.ResendVerification)
	}

	router.GET("/jobs", jobHandler.ListJobs)
	router.GET("/jobs/:id", jobHandler.GetJob)
	router.GET("/companies/:id/reviews", reviewHandler.CompanyReviews)

	signedIn := router.Group("/", g.SignedIn())
	{
		signedIn.POST("/jobs/:id/apply", jobHandler.Apply)
		signedIn.GET("/applications", jobHandler.ListApplications)
		signedIn.GET("/subscription", subscriptionHandler.Overview)
	}

	adminGroup := router.Group("/admin", g.Admin())
	{
		adminGroup.GET("/dashboard", adminHandler.Dashboard)
		adminGroup.GET("/complete-profile", adminHandler.CompleteProfileForm)
		adminGroup.POST("/complete-profile", adminHandler.CompleteProfile)
		adminGroup.GET("/jobs", adminHandler.ListJobs)
		adminGroup.GET("/jobs/new", adminHandler.NewJobForm)
		adminGroup.POST("/jobs", adminHandler.CreateJob)
		adminGroup.GET("/jobs/:id/edit", adminHandler.EditJobForm)
		adminGroup.POST("/jobs/:id", adminHandler.UpdateJob)
		adminGroup.POST("/jobs/:id/publish", adminHandler.SetPublished)
		adminGroup.POST("/jobs/:id/delete", adminHandler.DeleteJob)
	}

	premiumGroup := router.Group("/premium", g.Subscription())
	{
		premiumGroup.GET("/cv", subscriptionHandler.CV)
		premiumGroup.GET("/assessments", subscriptionHandler.ListAssessments)
		premiumGroup.GET("/assessments/:id", subscriptionHandler.TakeAssessment)
		premiumGroup.POST("/assessments/:id", subscriptionHandler.SubmitAssessment)
	}

	developerGroup := router.Group("/developer", g.Developer())
	{
		developerGroup.GET("", developerHandler.Home)
		developerGroup.GET("/assessments/new", developerHandler.NewForm)
		developerGroup.POST("/assessments", developerHandler.Create)
		developerGroup.GET("/assessments/:id/edit", developerHandler.EditForm)
		developerGroup.POST("/assessments/:id", developerHandler.Update)
		developerGroup.POST("/assessments/:id/delete", developerHandler.Delete)
		developerGroup.POST("/assessments/:id/badge", developerHandler.UploadBadge)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Workoo web is healthy."})
	})
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	router.NoRoute(func(c *gin.Context) {
		base.views.render(c, http.StatusNotFound, "not_found", base.views.page(c, "Not found"))
	})

	logger.Info("Page routes configured")
	return nil
}

// useFormFieldNames makes validation errors report form field names.
func useFormFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}
