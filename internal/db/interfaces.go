package db

import (
	"context"
	"errors"
)

// ErrEmptyBrowserID is returned when a repository is called without a browser id.
var ErrEmptyBrowserID = errors.New("browser id cannot be empty")

// SessionRepository persists the key/value session entries of each browser.
//
// Write applies set and remove as one operation: concurrent readers of the same
// browser observe either none or all of it. Separate browsers never block each
// other and no cross-request locking is offered; the last write to a key wins.
type SessionRepository interface {
	Load(ctx context.Context, browserID string) (map[string]string, error)
	Write(ctx context.Context, browserID string, set map[string]string, remove []string) error
	Close() error
}
