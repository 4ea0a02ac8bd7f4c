package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"workoo-web/internal/backend"
	"workoo-web/internal/core"
	"workoo-web/internal/guard"
)

// failure is how an error surfaces on a page.
type failure struct {
	Status   int
	Message  string
	Redirect string
	Screen   string
}

// mapErrorToPage maps service and backend errors onto page outcomes.
// Authentication failures go back to sign-in, authorization and subscription
// failures get their blocking screens, anything else is shown on the page
// with the backend's own message when it sent one.
func mapErrorToPage(err error) failure {
	switch {
	case errors.Is(err, core.ErrInvalidCredential):
		return failure{Status: http.StatusUnauthorized, Message: "Google sign-in could not be verified."}
	case errors.Is(err, core.ErrUnauthenticated), backend.IsStatus(err, http.StatusUnauthorized):
		return failure{Status: http.StatusUnauthorized, Redirect: guard.SignInPath}
	case backend.IsStatus(err, http.StatusForbidden):
		return failure{Status: http.StatusForbidden, Screen: guard.ScreenUnauthorized}
	case backend.IsStatus(err, http.StatusPaymentRequired):
		return failure{Status: http.StatusPaymentRequired, Screen: guard.ScreenUpgradeRequired}
	}

	status := backend.StatusOf(err)
	switch {
	case status == 0, status >= http.StatusInternalServerError:
		return failure{Status: http.StatusBadGateway, Message: backend.MessageOf(err, backend.GenericFailure)}
	default:
		return failure{Status: status, Message: backend.MessageOf(err, backend.GenericFailure)}
	}
}

// fail renders name with the mapped failure, or redirects/blocks when the
// failure is about the session itself.
func (h *handlers) fail(c *gin.Context, name string, p Page, err error) {
	ctx := c.Request.Context()
	if ctx.Err() != nil {
		c.Abort()
		return
	}

	f := mapErrorToPage(err)
	switch {
	case f.Redirect != "":
		if sess, ok := core.SessionFrom(ctx); ok {
			if clearErr := sess.Clear(context.WithoutCancel(ctx)); clearErr != nil {
				h.logger.Error("Failed to clear rejected session", zap.Error(clearErr))
			}
		}
		redirect(c, f.Redirect)
	case f.Screen != "":
		RenderScreen(c, f.Status, f.Screen)
		c.Abort()
	default:
		h.logFailure(c, f, err)
		p.Error = f.Message
		h.views.render(c, f.Status, name, p)
	}
}

// formFailure always shows the message on the form. Used by the sign-in flows
// where a 401 means wrong credentials rather than an expired session.
func (h *handlers) formFailure(c *gin.Context, name string, p Page, err error) {
	if c.Request.Context().Err() != nil {
		c.Abort()
		return
	}
	f := mapErrorToPage(err)
	if f.Message == "" {
		f.Message = backend.MessageOf(err, backend.GenericFailure)
	}
	h.logFailure(c, f, err)
	p.Error = f.Message
	h.views.render(c, f.Status, name, p)
}

func (h *handlers) logFailure(c *gin.Context, f failure, err error) {
	fields := []zap.Field{zap.String("path", c.Request.URL.Path), zap.Int("status", f.Status), zap.Error(err)}
	if f.Status >= http.StatusInternalServerError {
		h.logger.Error("Page failed", fields...)
	} else {
		h.logger.Info("Page rejected request", fields...)
	}
}

// invalid re-renders a form with per-field messages. Validation never reaches the backend.
func (h *handlers) invalid(c *gin.Context, name string, p Page, err error) {
	p.Errors = fieldErrors(err)
	p.Error = "Please correct the highlighted fields."
	h.views.render(c, http.StatusBadRequest, name, p)
}

// fieldErrors translates binding errors into messages keyed by form field name.
func fieldErrors(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"form": "The submitted form could not be read."}
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = fieldMessage(fe)
		}
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "eqfield":
		return "Does not match."
	case "oneof":
		return fmt.Sprintf("Choose one of: %s.", fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("Use at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s.", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("Use at most %s characters.", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s.", fe.Param())
	default:
		return "Invalid value."
	}
}
