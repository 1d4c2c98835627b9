package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/nextlevelbuilder/parkbot/internal/pipeline"
)

const greetingText = "Здравствуйте! 👋\n\n" +
	"Я — консультант Kids Park 🎉\n" +
	"Задайте любой вопрос — помогу с ценами, пакетами, меню и всем остальным!\n\n" +
	"Сәлеметсіз бе! Kids Park кеңесшісімін 🎈\n" +
	"Сұрақтарыңызға жауап беремін!"

const helpText = "Просто напишите вопрос! Например:\n" +
	"• Сколько стоит вход?\n" +
	"• Расскажи про ДР пакеты\n" +
	"• Что есть в меню?\n" +
	"• Где вы находитесь?\n\n" +
	"/start — начать заново\n" +
	"/manager — связаться с менеджером"

const managerAckText = "Менеджер свяжется с вами в ближайшее время! 🙏\n" +
	"Срочно: 8 778 268 27 79"

// handleCommand checks for control commands, which bypass the pipeline.
// Returns true if the message was handled as a command.
func (c *Channel) handleCommand(ctx context.Context, message *telego.Message, chatID string, from pipeline.Identity, text string) bool {
	if text[0] != '/' {
		return false
	}

	// Extract command (strip arguments and @botname suffix if present).
	cmd := strings.SplitN(text, " ", 2)[0]
	cmd = strings.SplitN(cmd, "@", 2)[0]
	cmd = strings.ToLower(cmd)

	chatIDObj := tu.ID(message.Chat.ID)

	switch cmd {
	case "/start":
		c.pipe.Reset(chatID)
		slog.Info("conversation reset", "chat_id", chatID)
		if _, err := c.bot.SendMessage(ctx, tu.Message(chatIDObj, greetingText)); err != nil {
			slog.Debug("greeting delivery failed", "chat_id", chatID, "error", err)
		}
		return true

	case "/help":
		_, _ = c.bot.SendMessage(ctx, tu.Message(chatIDObj, helpText))
		return true

	case "/manager":
		_, _ = c.bot.SendMessage(ctx, tu.Message(chatIDObj, managerAckText))
		c.pipe.ForceEscalate(ctx, chatID, from, "manual_request")
		return true

	case "/register":
		msg := tu.Message(chatIDObj, fmt.Sprintf("Ваш Chat ID: `%s`", chatID))
		msg.ParseMode = "Markdown"
		_, _ = c.bot.SendMessage(ctx, msg)
		return true
	}

	return false
}
