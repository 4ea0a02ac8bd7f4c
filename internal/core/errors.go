package core

import "errors"

// Guard-level failures. Backend failures stay *backend.APIError and are wrapped
// with one of these where the caller needs to branch.
var (
	ErrUnauthenticated   = errors.New("session is not authenticated")
	ErrInvalidCredential = errors.New("invalid social credential")
)
