package guard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"workoo-web/internal/core"
	"workoo-web/internal/db"
	"workoo-web/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSession(t *testing.T) core.SessionContext {
	t.Helper()
	store := core.NewTokenStore(db.NewMemorySessionRepository(0), zaptest.NewLogger(t))
	return store.For("browser-1")
}

func bindSession(sess core.SessionContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(core.WithSession(c.Request.Context(), sess))
		c.Next()
	}
}

// protectedRouter mounts guard in front of a handler that records whether it ran.
func protectedRouter(sess core.SessionContext, guard gin.HandlerFunc, ran *bool, paths ...string) *gin.Engine {
	r := gin.New()
	if sess != nil {
		r.Use(bindSession(sess))
	}
	group := r.Group("/", guard)
	for _, p := range paths {
		group.GET(p, func(c *gin.Context) {
			*ran = true
			c.String(http.StatusOK, "protected")
		})
	}
	return r
}

func serve(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNewFailsClosed(t *testing.T) {
	tests := []struct {
		name      string
		predicate Predicate
		fallback  Decision
		bind      bool
		wantCode  int
		wantBody  string
		wantLoc   string
	}{
		{
			name:      "predicate error",
			predicate: func(*gin.Context, core.SessionContext) (Decision, error) { return Allow(), errors.New("boom") },
			fallback:  Redirect(SignInPath),
			bind:      true,
			wantCode:  http.StatusFound,
			wantLoc:   SignInPath,
		},
		{
			name:      "predicate panic",
			predicate: func(*gin.Context, core.SessionContext) (Decision, error) { panic("boom") },
			fallback:  Deny(ScreenUpgradeRequired, http.StatusPaymentRequired),
			bind:      true,
			wantCode:  http.StatusPaymentRequired,
			wantBody:  ScreenUpgradeRequired,
		},
		{
			name:      "no session bound",
			predicate: func(*gin.Context, core.SessionContext) (Decision, error) { return Allow(), nil },
			fallback:  Deny(ScreenUnauthenticated, http.StatusUnauthorized),
			wantCode:  http.StatusUnauthorized,
			wantBody:  ScreenUnauthenticated,
		},
		{
			name:      "unresolved decision",
			predicate: func(*gin.Context, core.SessionContext) (Decision, error) { return Decision{State: Checking}, nil },
			fallback:  Redirect(SignInPath),
			bind:      true,
			wantCode:  http.StatusFound,
			wantLoc:   SignInPath,
		},
		{
			name:      "allowed fallback is replaced",
			predicate: func(*gin.Context, core.SessionContext) (Decision, error) { return Decision{}, errors.New("boom") },
			fallback:  Allow(),
			bind:      true,
			wantCode:  http.StatusServiceUnavailable,
			wantBody:  ScreenUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sess core.SessionContext
			if tt.bind {
				sess = newSession(t)
			}
			mw := New("test", tt.predicate, Options{Fallback: tt.fallback, Logger: zaptest.NewLogger(t)})

			ran := false
			w := serve(protectedRouter(sess, mw, &ran, "/page"), "/page")

			assert.False(t, ran)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantLoc, w.Header().Get("Location"))
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestNewUsesRenderer(t *testing.T) {
	sess := newSession(t)
	var rendered string
	mw := New("test", func(*gin.Context, core.SessionContext) (Decision, error) {
		return Deny(ScreenUnauthorized, http.StatusForbidden), nil
	}, Options{Render: func(c *gin.Context, status int, screen string) {
		rendered = screen
		c.Status(status)
	}})

	ran := false
	w := serve(protectedRouter(sess, mw, &ran, "/page"), "/page")
	assert.False(t, ran)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, ScreenUnauthorized, rendered)
}

func TestCancelledRequestRendersNothing(t *testing.T) {
	sess := newSession(t)
	require.NoError(t, sess.Set(context.Background(), models.Session{Token: "t", Role: models.RoleAdmin, UserID: 1}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mw := New("test", func(*gin.Context, core.SessionContext) (Decision, error) {
		cancel()
		return Deny(ScreenUnauthorized, http.StatusForbidden), nil
	}, Options{})

	ran := false
	r := protectedRouter(sess, mw, &ran, "/page")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil).WithContext(ctx))

	assert.False(t, ran)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, w.Header().Get("Location"))
}
