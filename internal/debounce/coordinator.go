// Package debounce coalesces bursts of rapid-fire message fragments into a
// single aggregated turn per conversation key. A fragment restarts the quiet
// period; only when no fragment arrives for the full delay does the buffered
// batch flush.
package debounce

import (
	"strings"
	"sync"
	"time"
)

// Flush receives the aggregated text for a key once its quiet period elapses.
// It runs on the timer goroutine, outside the coordinator lock, so it may block
// on network calls without serializing other keys.
type Flush func(key, text string)

type entry struct {
	fragments []string
	timer     *time.Timer
	gen       uint64
}

// Coordinator buffers fragments per key and fires the flush callback after a
// quiet period with no new arrivals. Safe for concurrent use. The mutex only
// guards buffer/timer bookkeeping; flushes run unlocked.
type Coordinator struct {
	mu      sync.Mutex
	delay   time.Duration
	flush   Flush
	pending map[string]*entry
	gen     uint64 // never reused, so a stale fire can't match a recreated entry
}

// New creates a Coordinator with the given quiet period.
func New(delay time.Duration, flush Flush) *Coordinator {
	return &Coordinator{
		delay:   delay,
		flush:   flush,
		pending: make(map[string]*entry),
	}
}

// OnFragment appends text to the key's buffer and restarts its timer.
// The previous timer is stopped best-effort; if it already fired, the bumped
// generation makes the in-flight fire a no-op, so the fragment lands in the
// next batch, never lost and never duplicated.
func (c *Coordinator) OnFragment(key, text string) {
	c.mu.Lock()
	e, ok := c.pending[key]
	if !ok {
		e = &entry{}
		c.pending[key] = e
	}

	e.fragments = append(e.fragments, text)
	if e.timer != nil {
		e.timer.Stop()
	}
	c.gen++
	e.gen = c.gen
	gen := e.gen
	e.timer = time.AfterFunc(c.delay, func() {
		c.fire(key, gen)
	})
	c.mu.Unlock()
}

// fire drains and flushes the key's buffer if the firing timer is still the
// current generation. Stale fires (superseded by a later fragment) and empty
// buffers are guaranteed no-ops.
func (c *Coordinator) fire(key string, gen uint64) {
	c.mu.Lock()
	e, ok := c.pending[key]
	if !ok || e.gen != gen {
		c.mu.Unlock()
		return
	}
	fragments := e.fragments
	delete(c.pending, key)
	c.mu.Unlock()

	if len(fragments) == 0 {
		return
	}
	c.flush(key, strings.Join(fragments, " "))
}

// Pending returns the buffered fragment count for key.
func (c *Coordinator) Pending(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.pending[key]; ok {
		return len(e.fragments)
	}
	return 0
}

// Cancel drops the key's buffer and timer without flushing.
// Idempotent: canceling an unknown or already-fired key is a no-op.
func (c *Coordinator) Cancel(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.pending[key]; ok {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(c.pending, key)
	}
}
