// Package event is an in-process pub/sub dispatcher. Domain code fires
// named events (order.created, ...) and the server wires listeners at
// boot: websocket broadcasts, queued mail jobs.
package event

import (
	"sync"

	"github.com/shashiranjanraj/bazaar/pkg/workerpool"
)

// Handler receives an event payload.
type Handler func(payload interface{})

// Bus holds named listener lists. The zero value is ready to use.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	pool     *workerpool.Pool
}

// UsePool routes FireAsync dispatch through a bounded pool instead of
// one goroutine per listener. The server sets this at boot.
func (b *Bus) UsePool(p *workerpool.Pool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pool = p
}

func (b *Bus) currentPool() *workerpool.Pool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pool
}

// Listen registers a handler for name.
func (b *Bus) Listen(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers == nil {
		b.handlers = make(map[string][]Handler)
	}
	b.handlers[name] = append(b.handlers[name], h)
}

func (b *Bus) snapshot(name string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	hs := make([]Handler, len(b.handlers[name]))
	copy(hs, b.handlers[name])
	return hs
}

// Fire dispatches synchronously to every listener, in registration order.
func (b *Bus) Fire(name string, payload interface{}) {
	for _, h := range b.snapshot(name) {
		h(payload)
	}
}

// FireAsync dispatches to every listener without waiting. With a pool
// attached, dispatch is bounded; a full or closed pool falls back to a
// plain goroutine so no event is ever dropped.
func (b *Bus) FireAsync(name string, payload interface{}) {
	pool := b.currentPool()
	for _, h := range b.snapshot(name) {
		h := h
		if pool != nil && pool.TrySubmit(func() { h(payload) }) == nil {
			continue
		}
		go h(payload)
	}
}

// Flush drops all listeners. Tests use it to isolate wiring.
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = nil
}

// Default is the process-wide bus used by the package-level helpers.
var Default Bus

func Listen(name string, h Handler)            { Default.Listen(name, h) }
func Fire(name string, payload interface{})    { Default.Fire(name, payload) }
func FireAsync(name string, payload interface{}) { Default.FireAsync(name, payload) }
func Flush()                                   { Default.Flush() }
