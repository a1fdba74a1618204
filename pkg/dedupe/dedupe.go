// Package dedupe collapses concurrent identical outbound calls into one
// shared in-flight operation.
package dedupe

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
)

// DefaultMaxEntries bounds how many distinct keys are tracked at once.
const DefaultMaxEntries = 200

type entry struct {
	done      chan struct{}
	value     any
	err       error
	settled   bool
	settledAt time.Time
	ttl       time.Duration
}

type Deduplicator struct {
	mu         sync.Mutex
	entries    map[string]*entry
	order      []string // insertion order, for FIFO eviction
	maxEntries int
}

func New(maxEntries int) *Deduplicator {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Deduplicator{
		entries:    make(map[string]*entry),
		maxEntries: maxEntries,
	}
}

// Key derives a canonical deduplication key: parameters are round-tripped
// through JSON so object keys serialize in sorted order, then hashed.
// Logically identical requests collide regardless of field order.
func Key(params any) string {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("unhashable:%T", params)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err == nil {
		if canonical, err := json.Marshal(generic); err == nil {
			raw = canonical
		}
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%x", sum)[:16]
}

// Do runs op under key, or joins the in-flight run for that key. Every
// waiter receives the identical value or failure. The settled result is
// reused for ttl, then the key is released.
func (d *Deduplicator) Do(ctx context.Context, key string, op func(context.Context) (any, error), ttl time.Duration) (any, error) {
	d.mu.Lock()
	if e, ok := d.entries[key]; ok {
		if e.settled && time.Since(e.settledAt) > e.ttl {
			d.removeLocked(key)
		} else {
			d.mu.Unlock()
			select {
			case <-e.done:
				return e.value, e.err
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	e := &entry{done: make(chan struct{}), ttl: ttl}
	d.entries[key] = e
	d.order = append(d.order, key)
	d.evictOverflowLocked()
	d.mu.Unlock()

	value, err := runOp(ctx, op)

	d.mu.Lock()
	e.value = value
	e.err = err
	e.settled = true
	e.settledAt = time.Now()
	close(e.done)
	// Release the key after the retention window unless it was already
	// evicted or replaced.
	time.AfterFunc(ttl, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if current, ok := d.entries[key]; ok && current == e {
			d.removeLocked(key)
		}
	})
	d.mu.Unlock()

	return value, err
}

// runOp converts a panicking operation into a failure. Without this the
// entry would never settle and every waiter on its done channel would
// block until their own context fired.
func runOp(ctx context.Context, op func(context.Context) (any, error)) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dedupe: operation panicked: %v", r)
		}
	}()
	return op(ctx)
}

// Cancel removes a tracked key. The underlying operation is not stopped
// and existing waiters still receive its result; only future callers are
// detached from it.
func (d *Deduplicator) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.removeLocked(key)
}

func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// evictOverflowLocked drops the oldest-inserted keys over capacity. FIFO,
// not LRU; eviction does not cancel an in-flight operation, it only stops
// sharing its result with future callers.
func (d *Deduplicator) evictOverflowLocked() {
	for len(d.entries) > d.maxEntries && len(d.order) > 0 {
		oldest := d.order[0]
		if _, ok := d.entries[oldest]; ok {
			log.Printf("dedupe: evicting oldest key %s (capacity %d)", oldest, d.maxEntries)
		}
		d.removeLocked(oldest)
	}
}

func (d *Deduplicator) removeLocked(key string) {
	delete(d.entries, key)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}
