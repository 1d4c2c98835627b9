package telegram

import (
	"fmt"
	"testing"
)

func TestFloodLimiter_AllowsBurstThenThrottles(t *testing.T) {
	f := NewFloodLimiter()

	allowed := 0
	for i := 0; i < floodBurst*2; i++ {
		if f.Allow("sender") {
			allowed++
		}
	}
	if allowed < floodBurst {
		t.Errorf("allowed %d messages, burst of %d should pass", allowed, floodBurst)
	}
	if allowed == floodBurst*2 {
		t.Error("limiter never throttled")
	}
}

func TestFloodLimiter_SendersIndependent(t *testing.T) {
	f := NewFloodLimiter()

	// Exhaust one sender's burst.
	for i := 0; i < floodBurst*2; i++ {
		f.Allow("noisy")
	}
	if !f.Allow("quiet") {
		t.Error("throttling one sender must not affect another")
	}
}

func TestFloodLimiter_BoundedTracking(t *testing.T) {
	f := NewFloodLimiter()

	for i := 0; i < maxTrackedSenders+100; i++ {
		f.Allow(fmt.Sprintf("sender-%d", i))
	}

	f.mu.Lock()
	n := len(f.entries)
	f.mu.Unlock()
	if n > maxTrackedSenders {
		t.Errorf("tracking %d senders, cap is %d", n, maxTrackedSenders)
	}
}
