package core

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"workoo-web/internal/db"
	"workoo-web/internal/models"
)

// ChangeKind names what happened to a browser's entries.
type ChangeKind string

const (
	ChangeSet     ChangeKind = "set"
	ChangePut     ChangeKind = "put"
	ChangeCleared ChangeKind = "cleared"
)

// ChangeEvent describes one successful write to the Token Store.
type ChangeEvent struct {
	BrowserID string     `json:"browserId"`
	Kind      ChangeKind `json:"kind"`
	Keys      []string   `json:"keys"`
	At        time.Time  `json:"at"`
}

// TokenStore persists session entries per browser and fans out change events.
//
// Writes for one browser are applied as single repository operations. Two
// requests from the same browser racing (say logout in one tab, sign-in in
// another) are not coordinated: whichever write lands last wins for each key.
type TokenStore struct {
	repo   db.SessionRepository
	logger *zap.Logger

	mu        sync.RWMutex
	nextID    int
	listeners map[int]func(ChangeEvent)
}

// NewTokenStore creates a TokenStore over repo.
func NewTokenStore(repo db.SessionRepository, logger *zap.Logger) *TokenStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenStore{
		repo:      repo,
		logger:    logger,
		listeners: make(map[int]func(ChangeEvent)),
	}
}

// For returns the SessionContext of one browser.
func (s *TokenStore) For(browserID string) SessionContext {
	return &browserSession{store: s, browserID: browserID}
}

// Subscribe registers fn for changes of every browser.
func (s *TokenStore) Subscribe(fn func(ChangeEvent)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *TokenStore) notify(ev ChangeEvent) {
	s.mu.RLock()
	fns := make([]func(ChangeEvent), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (s *TokenStore) load(ctx context.Context, browserID string) map[string]string {
	values, err := s.repo.Load(ctx, browserID)
	if err != nil {
		s.logger.Warn("Session load failed, treating as anonymous", zap.String("browserId", browserID), zap.Error(err))
		return map[string]string{}
	}
	return values
}

func (s *TokenStore) write(ctx context.Context, browserID string, kind ChangeKind, set map[string]string, remove []string) error {
	if err := s.repo.Write(ctx, browserID, set, remove); err != nil {
		s.logger.Error("Session write failed", zap.String("browserId", browserID), zap.String("kind", string(kind)), zap.Error(err))
		return err
	}
	keys := make([]string, 0, len(set)+len(remove))
	for k := range set {
		keys = append(keys, k)
	}
	keys = append(keys, remove...)
	s.notify(ChangeEvent{BrowserID: browserID, Kind: kind, Keys: keys, At: time.Now().UTC()})
	return nil
}

type browserSession struct {
	store     *TokenStore
	browserID string
}

func (b *browserSession) BrowserID() string {
	return b.browserID
}

func (b *browserSession) Get(ctx context.Context, key string) (string, bool) {
	v, ok := b.store.load(ctx, b.browserID)[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (b *browserSession) Set(ctx context.Context, session models.Session) error {
	set, remove := session.Entries()
	return b.store.write(ctx, b.browserID, ChangeSet, set, remove)
}

func (b *browserSession) Put(ctx context.Context, key, value string) error {
	if value == "" {
		return b.store.write(ctx, b.browserID, ChangePut, nil, []string{key})
	}
	return b.store.write(ctx, b.browserID, ChangePut, map[string]string{key: value}, nil)
}

func (b *browserSession) Clear(ctx context.Context) error {
	return b.store.write(ctx, b.browserID, ChangeCleared, nil, models.AllKeys)
}

func (b *browserSession) Snapshot(ctx context.Context) models.Session {
	return models.SessionFromEntries(b.store.load(ctx, b.browserID))
}

func (b *browserSession) Subscribe(fn func(ChangeEvent)) (unsubscribe func()) {
	return b.store.Subscribe(func(ev ChangeEvent) {
		if ev.BrowserID == b.browserID {
			fn(ev)
		}
	})
}

type sessionContextKey struct{}

// WithSession binds a SessionContext to ctx.
func WithSession(ctx context.Context, sess SessionContext) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFrom returns the SessionContext bound to ctx.
func SessionFrom(ctx context.Context) (SessionContext, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(SessionContext)
	return sess, ok && sess != nil
}

// TokenFromContext is the backend.TokenSource reading the stored token of the
// browser bound to ctx.
func TokenFromContext(ctx context.Context) string {
	sess, ok := SessionFrom(ctx)
	if !ok {
		return ""
	}
	token, _ := sess.Get(ctx, models.KeyToken)
	return token
}
