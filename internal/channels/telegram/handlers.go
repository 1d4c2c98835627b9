package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mymmrac/telego"

	"github.com/nextlevelbuilder/parkbot/internal/pipeline"
	"github.com/nextlevelbuilder/parkbot/internal/textutil"
)

// handleMessage processes one incoming Telegram message.
func (c *Channel) handleMessage(ctx context.Context, message *telego.Message) {
	if message.Text == "" {
		return
	}
	user := message.From
	if user == nil {
		return
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}

	chatID := fmt.Sprintf("%d", message.Chat.ID)
	userID := fmt.Sprintf("%d", user.ID)

	slog.Debug("telegram message received",
		"chat_id", chatID,
		"user_id", userID,
		"username", user.Username,
		"preview", textutil.Truncate(text, 60),
	)

	if !c.flood.Allow(userID) {
		slog.Warn("message dropped by flood limiter", "chat_id", chatID, "user_id", userID)
		return
	}

	from := pipeline.Identity{
		UserID:    userID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	if handled := c.handleCommand(ctx, message, chatID, from, text); handled {
		return
	}

	c.pipe.OnMessage(chatID, from, text)
}
