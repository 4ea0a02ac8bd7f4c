package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"workoo-web/internal/core"
	"workoo-web/internal/db"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sessionRouter(t *testing.T, seen *string) *gin.Engine {
	t.Helper()
	store := core.NewTokenStore(db.NewMemorySessionRepository(0), zaptest.NewLogger(t))
	r := gin.New()
	r.Use(BrowserSession(store, CookieOptions{MaxAge: time.Hour}, zaptest.NewLogger(t)))
	r.GET("/", func(c *gin.Context) {
		sess, ok := core.SessionFrom(c.Request.Context())
		if ok {
			*seen = sess.BrowserID()
		}
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestBrowserSessionIssuesCookie(t *testing.T) {
	var seen string
	r := sessionRouter(t, &seen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, BrowserCookie, c.Name)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 3600, c.MaxAge)
	assert.Equal(t, c.Value, seen)
	assert.NoError(t, uuid.Validate(seen))
}

func TestBrowserSessionReusesCookie(t *testing.T) {
	tests := []struct {
		name      string
		cookie    string
		wantReuse bool
	}{
		{name: "valid id", cookie: "0b8a0f7e-3c1d-4f55-9a3e-2f4a5c6d7e8f", wantReuse: true},
		{name: "malformed id", cookie: "not-a-uuid", wantReuse: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			r := sessionRouter(t, &seen)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: BrowserCookie, Value: tt.cookie})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if tt.wantReuse {
				assert.Equal(t, tt.cookie, seen)
				assert.Empty(t, w.Result().Cookies())
			} else {
				assert.NotEqual(t, tt.cookie, seen)
				assert.Len(t, w.Result().Cookies(), 1)
			}
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	obs, logs := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.Use(RecoveryMiddleware(zap.New(obs)))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Panic recovered", logs.All()[0].Message)
}

func TestRequestLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel zapcore.Level
	}{
		{name: "ok", status: http.StatusOK, wantLevel: zapcore.InfoLevel},
		{name: "redirect", status: http.StatusFound, wantLevel: zapcore.InfoLevel},
		{name: "payment required", status: http.StatusPaymentRequired, wantLevel: zapcore.WarnLevel},
		{name: "server error", status: http.StatusBadGateway, wantLevel: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, logs := observer.New(zapcore.DebugLevel)
			r := gin.New()
			r.Use(RequestLogger(zap.New(obs)))
			r.GET("/x", func(c *gin.Context) { c.Status(tt.status) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x?q=go", nil))

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, "q=go", entry.ContextMap()["query"])
		})
	}
}
