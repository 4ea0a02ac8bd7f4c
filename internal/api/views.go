package api

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"workoo-web/internal/core"
	"workoo-web/internal/guard"
	"workoo-web/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data every template receives.
type Page struct {
	Title   string
	Path    string
	Session models.Session
	User    *models.User
	Notice  string
	Error   string
	Errors  map[string]string
	Form    any
	Data    any

	GoogleClientID string
	OpenCageKey    string
}

// SignedIn reports whether the page is rendered for a signed-in browser.
func (p Page) SignedIn() bool {
	return !p.Session.Anonymous()
}

var templateFuncs = template.FuncMap{
	"deref": func(v *int) string {
		if v == nil {
			return ""
		}
		return fmt.Sprint(*v)
	},
	"date": func(v any) string {
		switch t := v.(type) {
		case time.Time:
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		case *time.Time:
			if t == nil || t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		default:
			return ""
		}
	},
	"add":      func(a, b int) int { return a + b },
	"landing":  func(role models.Role) string { return guard.Landing(role) },
	"jobTypes": func() []string { return jobTypes },
}

var jobTypes = []string{"FULL_TIME", "PART_TIME", "CONTRACT", "INTERNSHIP", "REMOTE"}

// LoadTemplates parses the embedded page and screen templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

// Views renders pages with the browser's session and the public client keys.
type Views struct {
	googleClientID string
	openCageKey    string
	profiles       *core.ProfileCache
}

// NewViews creates Views. The keys are only ever exposed to templates.
// profiles may be nil.
func NewViews(googleClientID, openCageKey string, profiles *core.ProfileCache) *Views {
	return &Views{googleClientID: googleClientID, openCageKey: openCageKey, profiles: profiles}
}

func (v *Views) page(c *gin.Context, title string) Page {
	p := Page{
		Title:          title,
		Path:           c.Request.URL.Path,
		GoogleClientID: v.googleClientID,
		OpenCageKey:    v.openCageKey,
	}
	if s, ok := guard.VerifiedSession(c); ok {
		p.Session = s
	} else if sess, ok := core.SessionFrom(c.Request.Context()); ok {
		p.Session = sess.Snapshot(c.Request.Context())
	}
	if u, ok := guard.CurrentUser(c); ok {
		p.User = u
	} else if p.SignedIn() {
		p.User = v.signedInUser(c, p.Session.UserID)
	}
	return p
}

// signedInUser prefers the profile cache and falls back to the stored user
// snapshot, which then warms the cache.
func (v *Views) signedInUser(c *gin.Context, userID int) *models.User {
	if v.profiles != nil && userID != 0 {
		if u, ok := v.profiles.User(userID); ok {
			return &u
		}
	}
	sess, ok := core.SessionFrom(c.Request.Context())
	if !ok {
		return nil
	}
	u, ok := core.StoredUser(c.Request.Context(), sess)
	if !ok {
		return nil
	}
	if v.profiles != nil && u.ID == userID {
		v.profiles.PutUser(*u)
	}
	return u
}

func (v *Views) render(c *gin.Context, status int, name string, p Page) {
	c.HTML(status, name, p)
}

// RenderScreen renders one of the blocking guard screens. It is the
// guard.ScreenRenderer used by the web routes.
func RenderScreen(c *gin.Context, status int, screen string) {
	p := Page{Title: screenTitles[screen], Path: c.Request.URL.Path}
	if sess, ok := core.SessionFrom(c.Request.Context()); ok {
		p.Session = sess.Snapshot(c.Request.Context())
	}
	c.HTML(status, screen, p)
}

var screenTitles = map[string]string{
	guard.ScreenUnauthenticated: "Sign in required",
	guard.ScreenUnauthorized:    "Access denied",
	guard.ScreenUpgradeRequired: "Upgrade required",
	guard.ScreenUnavailable:     "Temporarily unavailable",
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
	c.Abort()
}
