// Package escalate delivers best-effort human-handoff notifications to the
// manager chat. Delivery is never retried and never surfaced to the end user.
package escalate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nextlevelbuilder/parkbot/internal/history"
	"github.com/nextlevelbuilder/parkbot/internal/textutil"
)

const (
	// recentTurns is how many trailing turns accompany a notification.
	recentTurns = 6
	// turnCharLimit truncates each quoted turn.
	turnCharLimit = 150
)

// Sender delivers text to a chat. Satisfied by the Telegram channel.
type Sender interface {
	SendText(ctx context.Context, chatID, text string) error
}

// Notifier formats and dispatches escalation summaries.
type Notifier struct {
	sender      Sender
	managerChat string
	store       *history.Store
	now         func() time.Time
}

// New creates a Notifier. An empty managerChat degrades Notify to a
// warning-logged no-op.
func New(sender Sender, managerChat string, store *history.Store) *Notifier {
	return &Notifier{
		sender:      sender,
		managerChat: managerChat,
		store:       store,
		now:         time.Now,
	}
}

// Notify sends a handoff summary for the conversation to the manager chat.
// Best-effort: misconfiguration and delivery failures are logged only.
func (n *Notifier) Notify(ctx context.Context, key, userDisplay, label string) {
	if n.managerChat == "" {
		slog.Warn("escalation requested but no manager chat configured", "key", key, "label", label)
		return
	}

	text := n.format(key, userDisplay, label)
	if err := n.sender.SendText(ctx, n.managerChat, text); err != nil {
		slog.Error("failed to notify manager", "key", key, "label", label, "error", err)
		return
	}
	slog.Info("escalated to manager", "key", key, "label", label)
}

func (n *Notifier) format(key, userDisplay, label string) string {
	var recent []string
	for _, turn := range n.store.Recent(key, recentTurns) {
		tag := "👤"
		if turn.Role == history.RoleAssistant {
			tag = "🤖"
		}
		recent = append(recent, fmt.Sprintf("%s %s", tag, textutil.Truncate(turn.Content, turnCharLimit)))
	}

	return fmt.Sprintf(
		"🔔 Нужен менеджер!\n\n👤 %s (ID: %s)\n🕐 %s\n📂 Тема: %s\n\nПоследние сообщения:\n%s",
		userDisplay,
		key,
		n.now().Format("02.01.2006 15:04"),
		label,
		strings.Join(recent, "\n"),
	)
}
