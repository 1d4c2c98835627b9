// Package history keeps bounded, per-conversation turn history in memory.
// State lives for the process lifetime; idle conversations are evicted by a
// background sweeper rather than growing without bound.
package history

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one role-tagged unit of conversation content.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type conversation struct {
	turns        []Turn
	lastActivity time.Time
}

// Store holds per-key conversation history. Safe for concurrent use.
// Conversations are created lazily on first Append and never exceed
// 2*limit stored turns; when exceeded they are trimmed back to the most
// recent limit turns, aligned to a user turn so role alternation survives
// for prompt construction.
type Store struct {
	mu    sync.RWMutex
	convs map[string]*conversation
	limit int
}

// NewStore creates a Store bounding each conversation to limit turns.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = 10
	}
	return &Store{
		convs: make(map[string]*conversation),
		limit: limit,
	}
}

// Append adds a turn to a conversation, creating it if needed.
func (s *Store) Append(key, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[key]
	if !ok {
		c = &conversation{}
		s.convs[key] = c
	}

	c.turns = append(c.turns, Turn{Role: role, Content: content, Timestamp: time.Now()})
	c.lastActivity = time.Now()

	if len(c.turns) > s.limit*2 {
		c.turns = trimToRecent(c.turns, s.limit)
	}
}

// trimToRecent keeps the last limit turns, shifted forward by one when the
// cut lands on an assistant turn, so eviction removes (user, assistant)
// pairs where possible.
func trimToRecent(turns []Turn, limit int) []Turn {
	kept := turns[len(turns)-limit:]
	if len(kept) > 0 && kept[0].Role == RoleAssistant {
		kept = kept[1:]
	}
	out := make([]Turn, len(kept))
	copy(out, kept)
	return out
}

// Recent returns a copy of the last n turns for key.
func (s *Store) Recent(key string, n int) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.convs[key]
	if !ok || n <= 0 {
		return nil
	}

	turns := c.turns
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// Window returns the prompt history window: the last limit turns, aligned
// to start on a user turn where possible.
func (s *Store) Window(key string) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.convs[key]
	if !ok {
		return nil
	}

	turns := c.turns
	if len(turns) > s.limit {
		turns = turns[len(turns)-s.limit:]
		if len(turns) > 0 && turns[0].Role == RoleAssistant {
			turns = turns[1:]
		}
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// Len returns the stored turn count for key.
func (s *Store) Len(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.convs[key]; ok {
		return len(c.turns)
	}
	return 0
}

// Reset clears a conversation's history without dropping the key.
func (s *Store) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.convs[key]; ok {
		c.turns = nil
		c.lastActivity = time.Now()
	}
}

// EvictIdle drops conversations with no activity for ttl or longer.
// Returns the number of evicted keys.
func (s *Store) EvictIdle(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	evicted := 0
	for key, c := range s.convs {
		if c.lastActivity.Before(cutoff) {
			delete(s.convs, key)
			evicted++
		}
	}
	return evicted
}

// RunEviction sweeps idle conversations every interval until ctx is done.
func (s *Store) RunEviction(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictIdle(ttl); n > 0 {
				slog.Info("evicted idle conversations", "count", n, "ttl", ttl)
			}
		}
	}
}
