package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const sessionsCollection = "browser_sessions"

// firestoreSessionRepository stores one document per browser; every entry is a string field.
type firestoreSessionRepository struct {
	client *firestore.Client
}

// NewFirestoreSessionRepository wraps an initialized Firestore client.
func NewFirestoreSessionRepository(client *firestore.Client) (SessionRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client is not initialized for SessionRepository")
	}
	return &firestoreSessionRepository{client: client}, nil
}

func (r *firestoreSessionRepository) Load(ctx context.Context, browserID string) (map[string]string, error) {
	if browserID == "" {
		return nil, ErrEmptyBrowserID
	}
	snap, err := r.client.Collection(sessionsCollection).Doc(browserID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to load session for browser '%s': %w", browserID, err)
	}

	values := make(map[string]string)
	for k, v := range snap.Data() {
		if s, ok := v.(string); ok {
			values[k] = s
		}
	}
	return values, nil
}

// Write issues a single merge Set; removed keys are sent as firestore.Delete.
func (r *firestoreSessionRepository) Write(ctx context.Context, browserID string, set map[string]string, remove []string) error {
	if browserID == "" {
		return ErrEmptyBrowserID
	}
	data := make(map[string]interface{}, len(set)+len(remove))
	for _, k := range remove {
		data[k] = firestore.Delete
	}
	for k, v := range set {
		data[k] = v
	}
	if len(data) == 0 {
		return nil
	}
	_, err := r.client.Collection(sessionsCollection).Doc(browserID).Set(ctx, data, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to write session for browser '%s': %w", browserID, err)
	}
	return nil
}

func (r *firestoreSessionRepository) Close() error {
	return r.client.Close()
}
