// Package specialist is the response-generation stage: given an aggregated
// turn, its category label, and the bounded conversation history, it produces
// the reply text and the escalation decision.
package specialist

import (
	"context"
	"log/slog"
	"time"

	"github.com/nextlevelbuilder/parkbot/internal/history"
	"github.com/nextlevelbuilder/parkbot/internal/kb"
	"github.com/nextlevelbuilder/parkbot/internal/providers"
)

const (
	// maxOutputTokens keeps replies short. Consultants don't write essays.
	maxOutputTokens = 500
	temperature     = 0.7
)

// apologyText is the only failure wording an end user ever sees.
const apologyText = "Извините, произошла небольшая ошибка. Попробуйте ещё раз через минуту! 🙏"

// Result is the outcome of one response-generation call.
type Result struct {
	Text     string
	Escalate bool
	Category string
}

// Responder generates replies using the higher-quality specialist model.
type Responder struct {
	provider  providers.Provider
	model     string
	store     *history.Store
	knowledge *kb.Store
	now       func() time.Time // swapped in tests
}

// New creates a Responder. model names the specialist model identity.
func New(provider providers.Provider, model string, store *history.Store, knowledge *kb.Store) *Responder {
	return &Responder{
		provider:  provider,
		model:     model,
		store:     store,
		knowledge: knowledge,
		now:       time.Now,
	}
}

// Respond generates a reply for the aggregated text under the given label.
// It never fails: backend errors degrade to a fixed apology with
// Escalate=false and the original label.
func (r *Responder) Respond(ctx context.Context, key, text, label string) Result {
	systemPrompt := BuildSystemPrompt(r.knowledge.Fragment(label), r.now())

	messages := []providers.Message{{Role: "system", Content: systemPrompt}}
	for _, turn := range r.store.Window(key) {
		messages = append(messages, providers.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, providers.Message{Role: history.RoleUser, Content: text})

	resp, err := r.provider.Chat(ctx, providers.ChatRequest{
		Model:    r.model,
		Messages: messages,
		Options: map[string]interface{}{
			providers.OptTemperature: temperature,
			providers.OptMaxTokens:   maxOutputTokens,
		},
	})
	if err != nil {
		slog.Error("specialist response failed, sending apology", "key", key, "label", label, "error", err)
		return Result{Text: apologyText, Escalate: false, Category: label}
	}

	clean, escalate := StripMarker(resp.Content)
	return Result{Text: clean, Escalate: escalate, Category: label}
}
