// Package events implements the in-process change-notification channel.
// Mutating operations publish a "data changed" event; views resubscribe and
// re-read the stores from scratch — no deltas are ever pushed.
package events

import (
	"sync"
	"time"

	"github.com/rferreira/patrimo/internal/common"
	"github.com/rferreira/patrimo/internal/models"
)

// Listener receives change events. Listeners run synchronously on the
// publishing goroutine; they must not mutate stores from inside the callback.
type Listener func(models.ChangeEvent)

// Bus broadcasts change events to registered listeners.
type Bus struct {
	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
	logger    *common.Logger
}

// NewBus creates an empty change-notification bus.
func NewBus(logger *common.Logger) *Bus {
	return &Bus{
		listeners: make(map[int]Listener),
		logger:    logger,
	}
}

// Subscribe registers a listener and returns its unsubscribe function.
func (b *Bus) Subscribe(fn Listener) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

// Publish broadcasts a change event tagged with its source to every listener.
func (b *Bus) Publish(source string) {
	event := models.ChangeEvent{Source: source, Timestamp: time.Now()}

	b.mu.RLock()
	fns := make([]Listener, 0, len(b.listeners))
	for _, fn := range b.listeners {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(event)
	}

	b.logger.Debug().Str("source", source).Int("listeners", len(fns)).Msg("Change event published")
}

// ListenerCount returns the number of registered listeners.
func (b *Bus) ListenerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
