package db

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// memorySessionRepository keeps sessions in process memory. Entries are lost on
// restart and expire ttl after the last write to the browser.
type memorySessionRepository struct {
	// mu makes the read-modify-write of one browser atomic; the LRU only locks single calls.
	mu       sync.Mutex
	browsers *expirable.LRU[string, map[string]string]
}

// NewMemorySessionRepository creates an empty in-memory SessionRepository.
// A zero ttl keeps entries until they are cleared.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memorySessionRepository{
		browsers: expirable.NewLRU[string, map[string]string](0, nil, ttl),
	}
}

func (r *memorySessionRepository) Load(_ context.Context, browserID string) (map[string]string, error) {
	if browserID == "" {
		return nil, ErrEmptyBrowserID
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, _ := r.browsers.Get(browserID)
	out := make(map[string]string, len(entries))
	for k, v := range entries {
		out[k] = v
	}
	return out, nil
}

func (r *memorySessionRepository) Write(_ context.Context, browserID string, set map[string]string, remove []string) error {
	if browserID == "" {
		return ErrEmptyBrowserID
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	current, _ := r.browsers.Get(browserID)
	entries := make(map[string]string, len(current)+len(set))
	for k, v := range current {
		entries[k] = v
	}
	for _, k := range remove {
		delete(entries, k)
	}
	for k, v := range set {
		entries[k] = v
	}
	if len(entries) == 0 {
		r.browsers.Remove(browserID)
		return nil
	}
	r.browsers.Add(browserID, entries)
	return nil
}

func (r *memorySessionRepository) Close() error {
	return nil
}
