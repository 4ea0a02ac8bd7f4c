// Package events fans Token Store changes out beyond the process.
package events

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"workoo-web/internal/core"
)

const defaultBuffer = 256

// Broadcaster forwards session change events to a Publisher from a single
// background goroutine. Listeners run on the request path, so a full buffer
// drops the event instead of blocking the request.
type Broadcaster struct {
	publisher Publisher
	queue     string
	logger    *zap.Logger

	events    chan core.ChangeEvent
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// NewBroadcaster starts a Broadcaster publishing to queue.
func NewBroadcaster(publisher Publisher, queue string, buffer int, logger *zap.Logger) *Broadcaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	b := &Broadcaster{
		publisher: publisher,
		queue:     queue,
		logger:    logger,
		events:    make(chan core.ChangeEvent, buffer),
		done:      make(chan struct{}),
	}
	go b.run()
	return b
}

// Listen is registered with TokenStore.Subscribe.
func (b *Broadcaster) Listen(ev core.ChangeEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	select {
	case b.events <- ev:
	default:
		b.logger.Warn("Session event buffer full, dropping event",
			zap.String("browserId", ev.BrowserID), zap.String("kind", string(ev.Kind)))
	}
}

func (b *Broadcaster) run() {
	defer close(b.done)
	for ev := range b.events {
		body, err := json.Marshal(ev)
		if err != nil {
			b.logger.Error("Failed to encode session event", zap.Error(err))
			continue
		}
		if err := b.publisher.Publish(b.queue, body); err != nil {
			b.logger.Warn("Failed to publish session event", zap.String("queue", b.queue), zap.Error(err))
		}
	}
}

// Close stops accepting events, drains the buffer and closes the publisher.
func (b *Broadcaster) Close() error {
	var err error
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		close(b.events)
		b.mu.Unlock()

		<-b.done
		err = b.publisher.Close()
	})
	return err
}

// LogListener logs session changes; used when no broker is configured.
func LogListener(logger *zap.Logger) func(core.ChangeEvent) {
	return func(ev core.ChangeEvent) {
		logger.Debug("Session changed",
			zap.String("browserId", ev.BrowserID),
			zap.String("kind", string(ev.Kind)),
			zap.Strings("keys", ev.Keys),
		)
	}
}
