// Package pipeline orchestrates the per-turn flow: debounced aggregation,
// classification, response generation, history update, delivery, and
// escalation.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nextlevelbuilder/parkbot/internal/debounce"
	"github.com/nextlevelbuilder/parkbot/internal/escalate"
	"github.com/nextlevelbuilder/parkbot/internal/history"
	"github.com/nextlevelbuilder/parkbot/internal/router"
	"github.com/nextlevelbuilder/parkbot/internal/specialist"
	"github.com/nextlevelbuilder/parkbot/internal/textutil"
)

// Transport delivers messages back to the messaging platform.
// Satisfied by the Telegram channel.
type Transport interface {
	SendText(ctx context.Context, chatID, text string) error
	SendTyping(ctx context.Context, chatID string) error
}

// Identity describes the sender of a conversation, for escalation summaries.
type Identity struct {
	UserID    string
	Username  string
	FirstName string
	LastName  string
}

// Display renders the identity the way a manager wants to see it:
// "@username" when available, otherwise the full name.
func (i Identity) Display() string {
	if i.Username != "" {
		return "@" + i.Username
	}
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	if name == "" {
		return i.UserID
	}
	return name
}

// Deps wires the pipeline's collaborators.
type Deps struct {
	Classifier *router.Classifier
	Responder  *specialist.Responder
	Store      *history.Store
	Notifier   *escalate.Notifier
	Transport  Transport
	Debounce   time.Duration
}

// Pipeline drives the multi-stage routing flow for every conversation key.
type Pipeline struct {
	classifier *router.Classifier
	responder  *specialist.Responder
	store      *history.Store
	notifier   *escalate.Notifier
	transport  Transport

	coordinator *debounce.Coordinator
	identities  sync.Map // key string → Identity (latest sender)
}

// New creates a Pipeline and its debounce coordinator.
func New(deps Deps) *Pipeline {
	p := &Pipeline{
		classifier: deps.Classifier,
		responder:  deps.Responder,
		store:      deps.Store,
		notifier:   deps.Notifier,
		transport:  deps.Transport,
	}
	p.coordinator = debounce.New(deps.Debounce, p.processTurn)
	return p
}

// OnMessage feeds one raw inbound fragment into the debounce buffer.
// Returns immediately; processing happens when the quiet period elapses.
func (p *Pipeline) OnMessage(key string, from Identity, text string) {
	p.identities.Store(key, from)
	p.coordinator.OnFragment(key, text)
}

// Reset clears a conversation's history and any pending fragments.
func (p *Pipeline) Reset(key string) {
	p.coordinator.Cancel(key)
	p.store.Reset(key)
}

// ForceEscalate triggers a manager notification outside the normal flow
// (the /manager command), with a fixed label.
func (p *Pipeline) ForceEscalate(ctx context.Context, key string, from Identity, label string) {
	p.identities.Store(key, from)
	p.notifier.Notify(ctx, key, from.Display(), label)
}

// processTurn handles one aggregated turn. Strict stage ordering:
// classify → respond → append history → deliver → escalate. History is
// appended before delivery so an immediate next message sees updated
// context even when the transport is slow.
func (p *Pipeline) processTurn(key, text string) {
	ctx := context.Background()
	turnID := uuid.New().String()[:8]

	slog.Info("processing aggregated turn",
		"key", key, "turn", turnID, "preview", textutil.Truncate(text, 80),
	)

	if err := p.transport.SendTyping(ctx, key); err != nil {
		slog.Debug("typing indicator failed", "key", key, "error", err)
	}

	label := p.classifier.Classify(ctx, key, text)
	result := p.responder.Respond(ctx, key, text, label)

	p.store.Append(key, history.RoleUser, text)
	p.store.Append(key, history.RoleAssistant, result.Text)

	if err := p.transport.SendText(ctx, key, result.Text); err != nil {
		slog.Error("reply delivery failed", "key", key, "turn", turnID, "error", err)
	}

	if result.Escalate {
		p.notifier.Notify(ctx, key, p.identity(key).Display(), result.Category)
	}

	slog.Info("turn complete",
		"key", key, "turn", turnID, "label", result.Category, "escalated", result.Escalate,
	)
}

func (p *Pipeline) identity(key string) Identity {
	if v, ok := p.identities.Load(key); ok {
		return v.(Identity)
	}
	return Identity{UserID: key}
}
