package backend

import (
	"encoding/json"
	"errors"
	"fmt"
)

// GenericFailure is used when the backend gives no message of its own.
const GenericFailure = "Something went wrong. Please try again."

// APIError is returned for every failed call. Status is 0 for transport
// failures (network, timeout, cancellation); Err then holds the cause.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Body    []byte
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: transport failure: %v", e.Method, e.Path, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	return StatusOf(err) == status
}

// MessageOf returns the backend-provided message for err, or fallback.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

// parseErrorMessage extracts a human message from an error body. The backend
// sends either {"message": "..."} or {"message": ["...", "..."]} for validation
// errors, and sometimes only {"error": "..."}.
func parseErrorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if len(eb.Message) > 0 {
		var s string
		if err := json.Unmarshal(eb.Message, &s); err == nil && s != "" {
			return s
		}
		var list []string
		if err := json.Unmarshal(eb.Message, &list); err == nil && len(list) > 0 {
			return list[0]
		}
	}
	return eb.Error
}
