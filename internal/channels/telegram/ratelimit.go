package telegram

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// maxTrackedSenders caps the limiter map to prevent memory exhaustion
	// from rotating sender IDs.
	maxTrackedSenders = 4096

	// floodRate is the sustained per-sender message rate.
	floodRate = rate.Limit(0.5) // one message per 2s on average

	// floodBurst allows short rapid-fire bursts through; the debounce
	// coordinator exists precisely to aggregate those.
	floodBurst = 10

	// staleAfter is how long an idle sender entry stays tracked.
	staleAfter = 10 * time.Minute
)

type floodEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// FloodLimiter bounds per-sender inbound message rates. Safe for concurrent
// use. This guards the inbound path only; the outbound send path is
// deliberately unlimited.
type FloodLimiter struct {
	mu      sync.Mutex
	entries map[string]*floodEntry
}

// NewFloodLimiter creates a bounded per-sender flood limiter.
func NewFloodLimiter() *FloodLimiter {
	return &FloodLimiter{entries: make(map[string]*floodEntry)}
}

// Allow reports whether a message from senderID is within limits.
// Prunes stale entries and enforces a hard cap on tracked senders.
func (f *FloodLimiter) Allow(senderID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()

	if len(f.entries) >= maxTrackedSenders {
		for id, e := range f.entries {
			if now.Sub(e.lastSeen) >= staleAfter {
				delete(f.entries, id)
			}
		}
		// Hard eviction if still at cap.
		for len(f.entries) >= maxTrackedSenders {
			for id := range f.entries {
				delete(f.entries, id)
				break
			}
		}
	}

	e, ok := f.entries[senderID]
	if !ok {
		e = &floodEntry{limiter: rate.NewLimiter(floodRate, floodBurst)}
		f.entries[senderID] = e
	}
	e.lastSeen = now

	return e.limiter.Allow()
}
