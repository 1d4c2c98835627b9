package escalate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nextlevelbuilder/parkbot/internal/history"
)

type fakeSender struct {
	chatID string
	text   string
	calls  int
	err    error
}

func (f *fakeSender) SendText(_ context.Context, chatID, text string) error {
	f.calls++
	f.chatID = chatID
	f.text = text
	return f.err
}

func TestNotify_NoManagerChatIsNoOp(t *testing.T) {
	sender := &fakeSender{}
	n := New(sender, "", history.NewStore(10))

	n.Notify(context.Background(), "chat1", "@someone", "booking")
	if sender.calls != 0 {
		t.Errorf("SendText called %d times, want 0", sender.calls)
	}
}

func TestNotify_FormatsSummary(t *testing.T) {
	store := history.NewStore(10)
	store.Append("chat1", history.RoleUser, "хочу день рождения")
	store.Append("chat1", history.RoleAssistant, "Отлично! На сколько детей?")
	store.Append("chat1", history.RoleUser, strings.Repeat("х", 200))

	sender := &fakeSender{}
	n := New(sender, "-100777", store)
	n.now = func() time.Time { return time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC) }

	n.Notify(context.Background(), "chat1", "@parent", "birthday")

	if sender.chatID != "-100777" {
		t.Errorf("chatID = %q", sender.chatID)
	}
	for _, want := range []string{
		"🔔 Нужен менеджер!",
		"@parent (ID: chat1)",
		"31.08.2026 14:30",
		"Тема: birthday",
		"👤 хочу день рождения",
		"🤖 Отлично! На сколько детей?",
	} {
		if !strings.Contains(sender.text, want) {
			t.Errorf("notification missing %q:\n%s", want, sender.text)
		}
	}
	// Long turns are truncated to 150 runes plus ellipsis.
	if strings.Contains(sender.text, strings.Repeat("х", 151)) {
		t.Error("long turn was not truncated")
	}
	if !strings.Contains(sender.text, strings.Repeat("х", 150)+"...") {
		t.Error("truncated turn missing ellipsis")
	}
}

func TestNotify_DeliveryFailureIsSwallowed(t *testing.T) {
	sender := &fakeSender{err: errors.New("blocked by user")}
	n := New(sender, "-100777", history.NewStore(10))

	// Must not panic or retry.
	n.Notify(context.Background(), "chat1", "@parent", "complaint")
	if sender.calls != 1 {
		t.Errorf("SendText called %d times, want exactly 1 (no retry)", sender.calls)
	}
}

func TestNotify_LimitsToLastSixTurns(t *testing.T) {
	store := history.NewStore(10)
	for i := 0; i < 5; i++ {
		store.Append("chat1", history.RoleUser, "вопрос")
		store.Append("chat1", history.RoleAssistant, "ответ")
	}

	sender := &fakeSender{}
	n := New(sender, "-100777", store)
	n.Notify(context.Background(), "chat1", "@parent", "other")

	lines := 0
	for _, line := range strings.Split(sender.text, "\n") {
		if strings.HasPrefix(line, "👤 ") || strings.HasPrefix(line, "🤖 ") {
			// The header line also starts with 👤, exclude it by content.
			if strings.Contains(line, "(ID:") {
				continue
			}
			lines++
		}
	}
	if lines != 6 {
		t.Errorf("quoted %d turns, want 6", lines)
	}
}
