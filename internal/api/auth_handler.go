package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workoo-web/internal/core"
	"workoo-web/internal/guard"
	"workoo-web/internal/models"
)

// AuthHandler serves the sign-in, verification and password pages.
type AuthHandler struct {
	*handlers
	auth *core.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(h *handlers, auth *core.AuthService) *AuthHandler {
	return &AuthHandler{handlers: h, auth: auth}
}

var signInNotices = map[string]string{
	"password-reset": "Your password has been reset. Sign in with the new one.",
}

// SignInForm handles GET /auth/signin.
func (h *AuthHandler) SignInForm(c *gin.Context) {
	p := h.views.page(c, "Sign in")
	p.Notice = signInNotices[c.Query("notice")]
	if sess, ok := h.session(c); ok {
		if u, ok := core.VerifiedUser(c.Request.Context(), sess); ok {
			p.Form = models.SignInRequest{Email: u.Email}
		}
	}
	h.views.render(c, http.StatusOK, "signin", p)
}

// SignIn handles POST /auth/signin.
func (h *AuthHandler) SignIn(c *gin.Context) {
	p := h.views.page(c, "Sign in")

	var req models.SignInRequest
	if err := c.ShouldBind(&req); err != nil {
		p.Form = models.SignInRequest{Email: req.Email}
		h.invalid(c, "signin", p, err)
		return
	}
	p.Form = models.SignInRequest{Email: req.Email}

	sess, ok := h.session(c)
	if !ok {
		RenderScreen(c, http.StatusServiceUnavailable, guard.ScreenUnavailable)
		return
	}
	signedIn, err := h.auth.SignIn(c.Request.Context(), sess, req)
	if err != nil {
		h.formFailure(c, "signin", p, err)
		return
	}
	redirect(c, guard.Landing(signedIn.Role))
}

// SocialSignIn handles POST /auth/social.
func (h *AuthHandler) SocialSignIn(c *gin.Context) {
	p := h.views.page(c, "Sign in")

	var req models.SocialSignInRequest
	if err := c.ShouldBind(&req); err != nil {
		h.invalid(c, "signin", p, err)
		return
	}

	sess, ok := h.session(c)
	if !ok {
		RenderScreen(c, http.StatusServiceUnavailable, guard.ScreenUnavailable)
		return
	}
	signedIn, err := h.auth.SocialSignIn(c.Request.Context(), sess, req.Credential)
	if err != nil {
		h.formFailure(c, "signin", p, err)
		return
	}
	redirect(c, guard.Landing(signedIn.Role))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := h.session(c)
	if ok {
		if err := h.auth.Logout(c.Request.Context(), sess); err != nil {
			h.logger.Error("Logout failed", zap.String("browserId", sess.BrowserID()), zap.Error(err))
		}
	}
	redirect(c, guard.SignInPath)
}

// VerifyEmail handles GET /auth/verify/:token.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	p := h.views.page(c, "Verify email")
	sess, ok := h.session(c)
	if !ok {
		RenderScreen(c, http.StatusServiceUnavailable, guard.ScreenUnavailable)
		return
	}

	user, err := h.auth.VerifyEmail(c.Request.Context(), sess, c.Param("token"))
	if err != nil {
		h.formFailure(c, "verify_email", p, err)
		return
	}
	p.Data = user
	p.Notice = "Your email address is verified. You can sign in now."
	h.views.render(c, http.StatusOK, "verify_email", p)
}

// ResetPasswordForm handles GET /auth/reset-password/:token.
func (h *AuthHandler) ResetPasswordForm(c *gin.Context) {
	p := h.views.page(c, "Reset password")
	p.Data = c.Param("token")
	h.views.render(c, http.StatusOK, "reset_password", p)
}

// ResetPassword handles POST /auth/reset-password/:token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")
	p := h.views.page(c, "Reset password")
	p.Data = token

	var req models.ResetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		h.invalid(c, "reset_password", p, err)
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), token, req.Password); err != nil {
		h.formFailure(c, "reset_password", p, err)
		return
	}
	redirect(c, guard.SignInPath+"?notice=password-reset")
}

// ResendVerification handles POST /auth/resend-verification.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	p := h.views.page(c, "Sign in")

	var req models.ResendVerificationRequest
	if err := c.ShouldBind(&req); err != nil {
		h.invalid(c, "signin", p, err)
		return
	}
	if err := h.auth.ResendVerification(c.Request.Context(), req.Email); err != nil {
		h.formFailure(c, "signin", p, err)
		return
	}
	p.Notice = "A new verification link is on its way to " + req.Email + "."
	h.views.render(c, http.StatusOK, "signin", p)
}
