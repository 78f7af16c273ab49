// Package dedupe tracks assessment ids already accepted for evaluation.
package dedupe

import (
	"container/list"
	"context"
	"sync"
)

// DefaultMaxSize bounds the number of remembered ids.
const DefaultMaxSize = 50000

// Deduper records seen assessment ids to keep intake idempotent.
type Deduper interface {
	// SeenAndRecord reports whether id was seen before and records it if not.
	SeenAndRecord(ctx context.Context, id string) bool
	// Unrecord forgets id so a rejected submission can be retried.
	Unrecord(ctx context.Context, id string)
	// Size is the number of remembered ids.
	Size() int
}

// memory remembers ids in insertion order. When bounded the oldest id is
// forgotten first.
type memory struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List
	maxSize int
}

// NewInMemoryDeduper creates a deduper. See WithMaxSize for bounds.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &memory{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]*list.Element)
	d.order = list.New()
	return d
}

func (d *memory) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		if oldest := d.order.Front(); oldest != nil {
			delete(d.seen, oldest.Value.(string))
			d.order.Remove(oldest)
		}
	}
	d.seen[id] = d.order.PushBack(id)
	return false
}

func (d *memory) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[id]; ok {
		d.order.Remove(el)
		delete(d.seen, id)
	}
}

func (d *memory) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.order.Len()
}
