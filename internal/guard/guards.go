package guard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workoo-web/internal/core"
	"workoo-web/internal/models"
)

// Routes the guards send browsers to.
const (
	SignInPath           = "/auth/signin"
	CompleteProfilePath  = "/admin/complete-profile"
	AdminLandingPath     = "/admin/dashboard"
	UserLandingPath      = "/jobs"
	DeveloperLandingPath = "/developer"
)

// Blocking screens rendered by denying guards.
const (
	ScreenUnauthenticated = "unauthenticated"
	ScreenUnauthorized    = "unauthorized"
	ScreenUpgradeRequired = "upgrade_required"
	ScreenUnavailable     = "unavailable"
)

const (
	sessionKey      = "guard.session"
	subscriptionKey = "guard.subscription"
	userKey         = "guard.user"
)

// Verifier confirms a stored session with the backend.
type Verifier interface {
	Verify(ctx context.Context, sess core.SessionContext) (models.Session, error)
}

// SubscriptionChecker classifies the caller's subscription.
type SubscriptionChecker interface {
	Check(ctx context.Context) models.SubscriptionStatus
}

// Landing returns the page a signed-in role starts on.
func Landing(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return AdminLandingPath
	case models.RoleDeveloper:
		return DeveloperLandingPath
	default:
		return UserLandingPath
	}
}

// Guards builds the guard instances used by the web routes.
type Guards struct {
	verifier      Verifier
	subscriptions SubscriptionChecker
	render        ScreenRenderer
	logger        *zap.Logger
}

// NewGuards creates the guard set. render may be nil.
func NewGuards(verifier Verifier, subscriptions SubscriptionChecker, render ScreenRenderer, logger *zap.Logger) *Guards {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guards{verifier: verifier, subscriptions: subscriptions, render: render, logger: logger}
}

func (g *Guards) options(fallback Decision) Options {
	return Options{Fallback: fallback, Render: g.render, Logger: g.logger}
}

// Admin allows verified ADMIN sessions with a completed company profile.
// Incomplete profiles are sent to the completion page, which itself stays reachable.
func (g *Guards) Admin() gin.HandlerFunc {
	return New("admin", func(c *gin.Context, sess core.SessionContext) (Decision, error) {
		ctx := c.Request.Context()
		stored := sess.Snapshot(ctx)
		if stored.Anonymous() || stored.Role != models.RoleAdmin {
			return Redirect(SignInPath), nil
		}

		verified, err := g.verifier.Verify(ctx, sess)
		if err != nil {
			return Redirect(SignInPath), nil
		}
		if verified.Role != models.RoleAdmin {
			return Redirect(SignInPath), nil
		}
		if !verified.ProfileComplete && c.Request.URL.Path != CompleteProfilePath {
			return Redirect(CompleteProfilePath), nil
		}

		c.Set(sessionKey, verified)
		return Allow(), nil
	}, g.options(Redirect(SignInPath)))
}

// PublicOnly sends signed-in browsers to their landing page.
func (g *Guards) PublicOnly() gin.HandlerFunc {
	return New("public-only", func(c *gin.Context, sess core.SessionContext) (Decision, error) {
		stored := sess.Snapshot(c.Request.Context())
		if !stored.Anonymous() {
			return Redirect(Landing(stored.Role)), nil
		}
		return Allow(), nil
	}, g.options(Decision{}))
}

// AuthRedirect is PublicOnly for the auth pages. When allowed, a persisted
// user snapshot is made available through CurrentUser.
func (g *Guards) AuthRedirect() gin.HandlerFunc {
	return New("auth-redirect", func(c *gin.Context, sess core.SessionContext) (Decision, error) {
		ctx := c.Request.Context()
		stored := sess.Snapshot(ctx)
		if !stored.Anonymous() {
			return Redirect(Landing(stored.Role)), nil
		}
		if user, ok := core.StoredUser(ctx, sess); ok {
			c.Set(userKey, user)
		}
		return Allow(), nil
	}, g.options(Decision{}))
}

// Developer tells apart signed-out browsers (401) and other roles (403).
func (g *Guards) Developer() gin.HandlerFunc {
	return New("developer", func(c *gin.Context, sess core.SessionContext) (Decision, error) {
		ctx := c.Request.Context()
		stored := sess.Snapshot(ctx)
		if stored.Anonymous() || stored.UserID == 0 {
			return Deny(ScreenUnauthenticated, http.StatusUnauthorized), nil
		}
		if stored.Role != models.RoleDeveloper {
			return Deny(ScreenUnauthorized, http.StatusForbidden), nil
		}
		c.Set(sessionKey, stored)
		if user, ok := core.StoredUser(ctx, sess); ok {
			c.Set(userKey, user)
		}
		return Allow(), nil
	}, g.options(Deny(ScreenUnauthenticated, http.StatusUnauthorized)))
}

// Subscription requires a signed-in browser with an active subscription.
func (g *Guards) Subscription() gin.HandlerFunc {
	return New("subscription", func(c *gin.Context, sess core.SessionContext) (Decision, error) {
		ctx := c.Request.Context()
		stored := sess.Snapshot(ctx)
		if stored.Anonymous() {
			return Redirect(SignInPath), nil
		}

		status := g.subscriptions.Check(ctx)
		if !status.Active {
			return Deny(ScreenUpgradeRequired, http.StatusPaymentRequired), nil
		}
		c.Set(sessionKey, stored)
		c.Set(subscriptionKey, status)
		return Allow(), nil
	}, g.options(Deny(ScreenUpgradeRequired, http.StatusPaymentRequired)))
}

// SignedIn allows any browser holding a token, whatever its role.
func (g *Guards) SignedIn() gin.HandlerFunc {
	return New("signed-in", func(c *gin.Context, sess core.SessionContext) (Decision, error) {
		ctx := c.Request.Context()
		stored := sess.Snapshot(ctx)
		if stored.Anonymous() {
			return Redirect(SignInPath), nil
		}
		c.Set(sessionKey, stored)
		if user, ok := core.StoredUser(ctx, sess); ok {
			c.Set(userKey, user)
		}
		return Allow(), nil
	}, g.options(Redirect(SignInPath)))
}

// VerifiedSession returns the session a guard admitted the request with.
func VerifiedSession(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return models.Session{}, false
	}
	s, ok := v.(models.Session)
	return s, ok
}

// Subscription returns the status confirmed by the Subscription guard.
func Subscription(c *gin.Context) (models.SubscriptionStatus, bool) {
	v, ok := c.Get(subscriptionKey)
	if !ok {
		return models.Inactive, false
	}
	s, ok := v.(models.SubscriptionStatus)
	return s, ok
}

// CurrentUser returns the user snapshot rehydrated by a guard.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}
