package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"workoo-web/internal/core"
)

// BrowserCookie carries the opaque id that scopes a browser's session entries.
const BrowserCookie = "workoo_sid"

// SessionProvider hands out the SessionContext of a browser.
type SessionProvider interface {
	For(browserID string) core.SessionContext
}

// CookieOptions controls the browser id cookie.
type CookieOptions struct {
	MaxAge time.Duration
	Secure bool
}

// BrowserSession identifies the browser by its cookie, issuing a new id when
// the cookie is missing or malformed, and binds its SessionContext to the
// request context.
func BrowserSession(sessions SessionProvider, opts CookieOptions, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		browserID, err := c.Cookie(BrowserCookie)
		if err != nil || uuid.Validate(browserID) != nil {
			browserID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(BrowserCookie, browserID, int(opts.MaxAge.Seconds()), "/", "", opts.Secure, true)
			logger.Debug("Issued browser id", zap.String("browserId", browserID))
		}

		ctx := core.WithSession(c.Request.Context(), sessions.For(browserID))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
