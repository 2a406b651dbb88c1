// Package audit keeps an append-only trail of order lifecycle events
// (placed, paid, status changed, deleted). Entries are written synchronously
// from event listeners; a sink failure is logged and never fails the request
// that caused it.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/shashiranjanraj/foodhub/pkg/event"
	"github.com/shashiranjanraj/foodhub/pkg/reqid"
)

// Entry is one audit record.
type Entry struct {
	Event     string            `bson:"event"               json:"event"`
	OrderID   uint              `bson:"order_id"            json:"order_id"`
	Actor     string            `bson:"actor,omitempty"     json:"actor,omitempty"`
	Detail    map[string]string `bson:"detail,omitempty"    json:"detail,omitempty"`
	RequestID string            `bson:"request_id,omitempty" json:"request_id,omitempty"`
	At        time.Time         `bson:"at"                  json:"at"`
}

// Sink persists entries.
type Sink interface {
	Write(ctx context.Context, e Entry) error
}

// Subject is implemented by event payloads that can be audited.
type Subject interface {
	AuditEntry() Entry
}

// Subscribe writes every payload of the named events that implements
// Subject to sink.
func Subscribe(bus *event.Bus, sink Sink, names ...string) {
	for _, name := range names {
		name := name
		bus.Listen(name, func(ctx context.Context, payload interface{}) error {
			s, ok := payload.(Subject)
			if !ok {
				return nil
			}
			e := s.AuditEntry()
			if e.Event == "" {
				e.Event = name
			}
			if e.At.IsZero() {
				e.At = time.Now().UTC()
			}
			if e.RequestID == "" {
				e.RequestID = reqid.FromCtx(ctx)
			}
			return sink.Write(ctx, e)
		})
	}
}

// MemorySink keeps entries in process. Used when no Mongo URI is configured
// and in tests.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
	limit   int
}

// NewMemorySink keeps at most limit entries, dropping the oldest. A limit of
// zero keeps everything.
func NewMemorySink(limit int) *MemorySink {
	return &MemorySink{limit: limit}
}

func (m *MemorySink) Write(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	if m.limit > 0 && len(m.entries) > m.limit {
		m.entries = m.entries[len(m.entries)-m.limit:]
	}
	return nil
}

// Entries returns a copy of the stored entries, oldest first.
func (m *MemorySink) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}
