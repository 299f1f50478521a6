// Package event provides a simple synchronous/async event dispatcher.
//
// Services fire domain events after their durable writes commit; listeners
// registered at boot turn them into notifications, metrics, and pushes.
// Keeping listeners outside the services keeps notification dispatch outside
// every transaction boundary.
package event

import (
	"sync"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

// Bus is an isolated event dispatcher. The package-level functions operate
// on a default bus; tests can construct their own.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (b *Bus) Listen(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
func (b *Bus) Fire(event string, payload interface{}) {
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[event]))
	copy(hs, b.handlers[event])
	b.mu.RUnlock()

	for _, h := range hs {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners concurrently.
// It returns immediately without waiting for handlers to complete.
func (b *Bus) FireAsync(event string, payload interface{}) {
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[event]))
	copy(hs, b.handlers[event])
	b.mu.RUnlock()

	for _, h := range hs {
		go h(payload)
	}
}

// Flush removes all listeners (useful in tests).
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]Handler{}
}

var defaultBus = NewBus()

// Listen registers a handler on the default bus.
func Listen(event string, handler Handler) { defaultBus.Listen(event, handler) }

// Fire dispatches on the default bus.
func Fire(event string, payload interface{}) { defaultBus.Fire(event, payload) }

// FireAsync dispatches asynchronously on the default bus.
func FireAsync(event string, payload interface{}) { defaultBus.FireAsync(event, payload) }

// Flush clears the default bus (useful in tests).
func Flush() { defaultBus.Flush() }
