// Package guard gates route groups on the browser's session.
//
// Every guard is the same primitive: a predicate evaluated once per request
// entering the group, resolving to allowed, denied or redirecting. Protected
// handlers only run when the decision is allowed.
package guard

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workoo-web/internal/core"
)

// State is the resolution of a guard for one request.
type State string

const (
	Checking    State = "checking"
	Allowed     State = "allowed"
	Denied      State = "denied"
	Redirecting State = "redirecting"
)

// Decision is what a predicate resolves to.
type Decision struct {
	State    State
	Location string
	Screen   string
	Status   int
}

// Allow lets the request through to the protected handlers.
func Allow() Decision {
	return Decision{State: Allowed}
}

// Redirect sends the browser to location.
func Redirect(location string) Decision {
	return Decision{State: Redirecting, Location: location, Status: http.StatusFound}
}

// Deny renders a blocking screen with status instead of the protected page.
func Deny(screen string, status int) Decision {
	return Decision{State: Denied, Screen: screen, Status: status}
}

// Predicate decides a request. An error resolves to the guard's fallback.
type Predicate func(c *gin.Context, sess core.SessionContext) (Decision, error)

// ScreenRenderer writes a blocking screen.
type ScreenRenderer func(c *gin.Context, status int, screen string)

// Options configures a guard.
type Options struct {
	// Fallback is used when the predicate fails, panics or returns no decision.
	// It must not be Allowed.
	Fallback Decision
	Render   ScreenRenderer
	Logger   *zap.Logger
}

// New builds a guard middleware named name around predicate.
func New(name string, predicate Predicate, opts Options) gin.HandlerFunc {
	if opts.Fallback.State == "" || opts.Fallback.State == Allowed || opts.Fallback.State == Checking {
		opts.Fallback = Deny(ScreenUnavailable, http.StatusServiceUnavailable)
	}
	if opts.Render == nil {
		opts.Render = plainScreen
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("guard", name))

	return func(c *gin.Context) {
		decision := evaluate(c, predicate, opts.Fallback, logger)

		// The client went away while we were checking: nothing to render or store.
		if err := c.Request.Context().Err(); err != nil {
			logger.Debug("Request cancelled during guard check", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.Abort()
			return
		}

		logger.Debug("Guard resolved",
			zap.String("path", c.Request.URL.Path),
			zap.String("state", string(decision.State)),
			zap.String("location", decision.Location),
			zap.String("screen", decision.Screen),
		)

		switch decision.State {
		case Allowed:
			c.Next()
		case Redirecting:
			c.Redirect(decision.Status, decision.Location)
			c.Abort()
		default:
			opts.Render(c, decision.Status, decision.Screen)
			c.Abort()
		}
	}
}

func evaluate(c *gin.Context, predicate Predicate, fallback Decision, logger *zap.Logger) (decision Decision) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Guard predicate panicked, failing closed", zap.String("path", c.Request.URL.Path), zap.Any("panic", r))
			decision = fallback
		}
	}()

	sess, ok := core.SessionFrom(c.Request.Context())
	if !ok {
		logger.Error("No session bound to request, failing closed", zap.String("path", c.Request.URL.Path))
		return fallback
	}

	decision, err := predicate(c, sess)
	if err != nil {
		logger.Warn("Guard predicate failed, failing closed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		return fallback
	}
	if err := decision.validate(); err != nil {
		logger.Error("Guard predicate returned an invalid decision", zap.String("path", c.Request.URL.Path), zap.Error(err))
		return fallback
	}
	return decision
}

func (d Decision) validate() error {
	switch d.State {
	case Allowed:
		return nil
	case Redirecting:
		if d.Location == "" {
			return fmt.Errorf("redirect without location")
		}
		return nil
	case Denied:
		if d.Screen == "" || d.Status == 0 {
			return fmt.Errorf("denial without screen or status")
		}
		return nil
	default:
		return fmt.Errorf("unresolved state %q", d.State)
	}
}

func plainScreen(c *gin.Context, status int, screen string) {
	c.String(status, screen)
}
