package history

import (
	"fmt"
	"testing"
	"time"
)

func TestAppend_NeverExceedsTwiceLimit(t *testing.T) {
	s := NewStore(10)
	for i := 0; i < 100; i++ {
		s.Append("chat", RoleUser, fmt.Sprintf("q%d", i))
		s.Append("chat", RoleAssistant, fmt.Sprintf("a%d", i))
	}
	if n := s.Len("chat"); n > 20 {
		t.Errorf("stored %d turns, bound is 20", n)
	}
}

func TestTrim_KeepsRecentAndStartsOnUserTurn(t *testing.T) {
	s := NewStore(4)
	// 5 full exchanges → 10 turns → trimmed past 8.
	for i := 0; i < 5; i++ {
		s.Append("chat", RoleUser, fmt.Sprintf("q%d", i))
		s.Append("chat", RoleAssistant, fmt.Sprintf("a%d", i))
	}

	turns := s.Recent("chat", 100)
	if len(turns) == 0 {
		t.Fatal("no turns stored")
	}
	if turns[0].Role != RoleUser {
		t.Errorf("oldest kept turn role = %q, want user (pair eviction)", turns[0].Role)
	}
	// Most recent exchange must survive.
	last := turns[len(turns)-1]
	if last.Role != RoleAssistant || last.Content != "a4" {
		t.Errorf("newest turn = %+v, want a4", last)
	}
	for i := 1; i < len(turns); i++ {
		if turns[i].Role == turns[i-1].Role {
			t.Errorf("role alternation broken at %d: %q then %q", i, turns[i-1].Role, turns[i].Role)
		}
	}
}

func TestWindow_BoundedAndAligned(t *testing.T) {
	s := NewStore(4)
	for i := 0; i < 3; i++ {
		s.Append("chat", RoleUser, fmt.Sprintf("q%d", i))
		s.Append("chat", RoleAssistant, fmt.Sprintf("a%d", i))
	}

	w := s.Window("chat")
	if len(w) > 4 {
		t.Errorf("window has %d turns, limit is 4", len(w))
	}
	if len(w) > 0 && w[0].Role != RoleUser {
		t.Errorf("window starts on %q, want user", w[0].Role)
	}
}

func TestRecent_ReturnsLastN(t *testing.T) {
	s := NewStore(10)
	s.Append("chat", RoleUser, "one")
	s.Append("chat", RoleAssistant, "two")
	s.Append("chat", RoleUser, "three")

	got := s.Recent("chat", 2)
	if len(got) != 2 || got[0].Content != "two" || got[1].Content != "three" {
		t.Errorf("Recent(2) = %+v", got)
	}
	if got := s.Recent("missing", 2); got != nil {
		t.Errorf("Recent on unknown key = %+v, want nil", got)
	}
}

func TestReset(t *testing.T) {
	s := NewStore(10)
	s.Append("chat", RoleUser, "hi")
	s.Reset("chat")
	if n := s.Len("chat"); n != 0 {
		t.Errorf("Len after Reset = %d", n)
	}
	// Reset on an unknown key is a no-op.
	s.Reset("missing")
}

func TestKeyIndependence(t *testing.T) {
	s := NewStore(10)
	s.Append("a", RoleUser, "from a")
	s.Append("b", RoleUser, "from b")

	ta := s.Recent("a", 10)
	if len(ta) != 1 || ta[0].Content != "from a" {
		t.Errorf("key a turns = %+v", ta)
	}
	s.Reset("a")
	if s.Len("b") != 1 {
		t.Error("resetting key a touched key b")
	}
}

func TestEvictIdle(t *testing.T) {
	s := NewStore(10)
	s.Append("old", RoleUser, "hi")
	s.Append("fresh", RoleUser, "hi")

	// Backdate "old" through the internal map.
	s.mu.Lock()
	s.convs["old"].lastActivity = time.Now().Add(-2 * time.Hour)
	s.mu.Unlock()

	if n := s.EvictIdle(time.Hour); n != 1 {
		t.Errorf("EvictIdle = %d, want 1", n)
	}
	if s.Len("old") != 0 {
		t.Error("idle conversation survived eviction")
	}
	if s.Len("fresh") != 1 {
		t.Error("active conversation was evicted")
	}
}
