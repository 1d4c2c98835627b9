// Package telegram connects the pipeline to the Telegram Bot API via long
// polling. It is the only transport implementation; the pipeline sees it
// through the Transport interface.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/nextlevelbuilder/parkbot/internal/pipeline"
)

// Channel connects to Telegram via the Bot API using long polling.
type Channel struct {
	bot        *telego.Bot
	pipe       *pipeline.Pipeline
	flood      *FloodLimiter
	pollCancel context.CancelFunc // cancels the long polling context
	pollDone   chan struct{}      // closed when polling goroutine exits
}

// New creates a Telegram channel. AttachPipeline must be called before Start:
// the channel and the pipeline reference each other (the pipeline sends
// through the channel), so wiring happens in two steps.
func New(token string) (*Channel, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Channel{
		bot:   bot,
		flood: NewFloodLimiter(),
	}, nil
}

// AttachPipeline wires the pipeline that inbound messages feed into.
func (c *Channel) AttachPipeline(p *pipeline.Pipeline) {
	c.pipe = p
}

// Start begins long polling for Telegram updates.
func (c *Channel) Start(ctx context.Context) error {
	slog.Info("starting telegram bot (polling mode)")

	pollCtx, cancel := context.WithCancel(ctx)
	c.pollCancel = cancel
	c.pollDone = make(chan struct{})

	updates, err := c.bot.UpdatesViaLongPolling(pollCtx, &telego.GetUpdatesParams{
		Timeout:        30,
		AllowedUpdates: []string{"message"},
	})
	if err != nil {
		cancel()
		return fmt.Errorf("start long polling: %w", err)
	}

	slog.Info("telegram bot connected", "username", c.bot.Username())

	go func() {
		defer close(c.pollDone)
		for {
			select {
			case <-pollCtx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					slog.Info("telegram updates channel closed")
					return
				}
				if update.Message != nil {
					c.handleMessage(pollCtx, update.Message)
				}
			}
		}
	}()

	return nil
}

// Stop shuts down the bot by cancelling the long polling context and waiting
// for the polling goroutine to exit, so Telegram releases the getUpdates
// lock before a new instance starts.
func (c *Channel) Stop(_ context.Context) error {
	slog.Info("stopping telegram bot")

	if c.pollCancel != nil {
		c.pollCancel()
	}

	if c.pollDone != nil {
		select {
		case <-c.pollDone:
			slog.Info("telegram bot stopped")
		case <-time.After(10 * time.Second):
			slog.Warn("telegram polling goroutine did not exit within timeout")
		}
	}

	return nil
}

// SendText delivers text to a chat. Implements pipeline.Transport and
// escalate.Sender.
func (c *Channel) SendText(ctx context.Context, chatID, text string) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return fmt.Errorf("invalid chat ID %q: %w", chatID, err)
	}
	_, err = c.bot.SendMessage(ctx, tu.Message(tu.ID(id), text))
	return err
}

// SendTyping shows the "typing..." indicator in a chat.
func (c *Channel) SendTyping(ctx context.Context, chatID string) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return fmt.Errorf("invalid chat ID %q: %w", chatID, err)
	}
	return c.bot.SendChatAction(ctx, tu.ChatAction(tu.ID(id), telego.ChatActionTyping))
}

// parseChatID converts a string chat ID to int64.
func parseChatID(chatIDStr string) (int64, error) {
	var id int64
	_, err := fmt.Sscanf(chatIDStr, "%d", &id)
	return id, err
}
