// Package dedupe tracks which event payloads have already been folded
// into a scoring run. Collectors paginate with overlap, so the same
// incident or commit routinely arrives twice inside one run; keys are
// run-scoped ("<runID>/<eventID>") so reruns over the same period start
// clean.
package dedupe

import (
	"context"
	"sync"
)

const defaultMaxSize = 50000

// Deduper reports whether an event key was already recorded, and lets a
// caller release keys again when the window they belong to is not going
// to be scored after all.
type Deduper interface {
	// SeenAndRecord returns true when key was recorded before, and
	// records it otherwise.
	SeenAndRecord(ctx context.Context, key string) bool
	// Unrecord forgets key so a later SeenAndRecord treats it as new.
	Unrecord(ctx context.Context, key string)
	// Size returns the number of keys currently recorded.
	Size() int64
}

// memoryDeduper keeps keys in a set plus an insertion-order queue. When
// the set is full the oldest still-recorded key is evicted; entries
// removed by Unrecord stay in the queue as tombstones and are skipped
// during eviction.
type memoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	maxSize int
}

// NewMemoryDeduper returns a Deduper bounded at 50000 keys unless
// overridden. A max size of zero or below disables eviction.
func NewMemoryDeduper(opts ...Option) Deduper {
	d := &memoryDeduper{
		seen:    make(map[string]struct{}),
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *memoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}

	if d.maxSize > 0 {
		for len(d.seen) >= d.maxSize {
			d.evictOldest()
		}
	}

	d.seen[key] = struct{}{}
	if d.maxSize > 0 {
		d.order = append(d.order, key)
	}

	return false
}

func (d *memoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// The queue entry becomes a tombstone; evictOldest skips it.
	delete(d.seen, key)
}

func (d *memoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return int64(len(d.seen))
}

// evictOldest pops queue entries until one still present in the set is
// found and removed. Callers hold d.mu.
func (d *memoryDeduper) evictOldest() {
	for len(d.order) > 0 {
		key := d.order[0]
		d.order = d.order[1:]

		if _, ok := d.seen[key]; ok {
			delete(d.seen, key)

			return
		}
	}
}
