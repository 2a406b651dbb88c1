// Package event is a synchronous in-process dispatcher. Services fire
// lifecycle events (order.placed, order.paid, ...) and listeners such as the
// audit trail react within the same request.
package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/foodhub/pkg/logger"
)

// Handler receives an event payload. A returned error is logged and does not
// stop the remaining listeners.
type Handler func(ctx context.Context, payload interface{}) error

// Bus holds listeners by event name. The zero value is not usable; use New.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func New() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers h for name.
func (b *Bus) Listen(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Fire runs every listener for name in registration order and returns how
// many of them failed. A panicking listener counts as a failure.
func (b *Bus) Fire(ctx context.Context, name string, payload interface{}) int {
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[name]))
	copy(hs, b.handlers[name])
	b.mu.RUnlock()

	failed := 0
	for _, h := range hs {
		if err := call(ctx, h, payload); err != nil {
			failed++
			logger.WithCtx(ctx).Warn("event listener failed", "event", name, "error", err)
		}
	}
	return failed
}

// Flush removes all listeners.
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]Handler{}
}

func call(ctx context.Context, h Handler, payload interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h(ctx, payload)
}

var global = New()

// Listen registers h on the process-wide bus.
func Listen(name string, h Handler) { global.Listen(name, h) }

// Fire dispatches on the process-wide bus.
func Fire(ctx context.Context, name string, payload interface{}) int {
	return global.Fire(ctx, name, payload)
}

// Flush clears the process-wide bus.
func Flush() { global.Flush() }
