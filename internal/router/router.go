// Package router is the cheap classification stage: it maps an aggregated
// user turn (plus recent history) to one category label from the closed set.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nextlevelbuilder/parkbot/internal/history"
	"github.com/nextlevelbuilder/parkbot/internal/kb"
	"github.com/nextlevelbuilder/parkbot/internal/providers"
	"github.com/nextlevelbuilder/parkbot/internal/textutil"
)

const (
	// contextTurns is how many stored turns feed the classification context.
	contextTurns = 4
	// contextCharLimit truncates each context turn for the router prompt.
	contextCharLimit = 100
	// maxOutputTokens caps the router completion. One label is one word.
	maxOutputTokens = 20
)

// Classifier labels aggregated turns using a fast/cheap model.
type Classifier struct {
	provider  providers.Provider
	model     string
	store     *history.Store
	knowledge *kb.Store
}

// New creates a Classifier. model names the router model identity.
func New(provider providers.Provider, model string, store *history.Store, knowledge *kb.Store) *Classifier {
	return &Classifier{
		provider:  provider,
		model:     model,
		store:     store,
		knowledge: knowledge,
	}
}

// Classify maps the aggregated text to a category label. It never fails:
// unknown or malformed model output, as well as any backend error, degrades
// to kb.LabelOther. Failures are logged, not surfaced.
func (c *Classifier) Classify(ctx context.Context, key, text string) string {
	resp, err := c.provider.Chat(ctx, providers.ChatRequest{
		Model: c.model,
		Messages: []providers.Message{
			{Role: "system", Content: c.systemPrompt()},
			{Role: "user", Content: c.userPrompt(key, text)},
		},
		Options: map[string]interface{}{
			providers.OptTemperature: 0.0,
			providers.OptMaxTokens:   maxOutputTokens,
		},
	})
	if err != nil {
		slog.Error("router classification failed, falling back", "key", key, "error", err)
		return kb.LabelOther
	}

	label := Normalize(resp.Content)
	if !c.knowledge.Known(label) {
		slog.Warn("router returned unknown label, falling back",
			"key", key, "raw", textutil.Truncate(resp.Content, 40),
		)
		return kb.LabelOther
	}

	slog.Info("router classified turn",
		"key", key, "label", label, "preview", textutil.Truncate(text, 50),
	)
	return label
}

func (c *Classifier) systemPrompt() string {
	return fmt.Sprintf(`Ты классификатор сообщений для детского развлекательного центра Kids Park.

Определи категорию сообщения клиента. Верни ТОЛЬКО одно слово — название категории.

Категории:
%s

ВАЖНО: Учитывай контекст предыдущих сообщений. Если клиент уже обсуждал тему и продолжает — используй ту же категорию.

Верни ОДНО слово: %s`, c.knowledge.Description(), strings.Join(kb.Labels, ", "))
}

// userPrompt combines a bounded summary of the recent dialog with the new
// aggregated message.
func (c *Classifier) userPrompt(key, text string) string {
	var lines []string
	for _, turn := range c.store.Recent(key, contextTurns) {
		role := "Клиент"
		if turn.Role == history.RoleAssistant {
			role = "Бот"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, textutil.Truncate(turn.Content, contextCharLimit)))
	}

	dialogContext := "Новый диалог"
	if len(lines) > 0 {
		dialogContext = strings.Join(lines, "\n")
	}

	return fmt.Sprintf("Контекст диалога:\n%s\n\nНовое сообщение клиента: %s", dialogContext, text)
}

// Normalize reduces raw model output to a candidate label: lower-cased
// first whitespace-delimited token with surrounding punctuation stripped.
func Normalize(raw string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], ".,!\"'")
}
