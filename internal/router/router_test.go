package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nextlevelbuilder/parkbot/internal/history"
	"github.com/nextlevelbuilder/parkbot/internal/kb"
	"github.com/nextlevelbuilder/parkbot/internal/providers"
)

// fakeProvider returns a canned response or error and records the request.
type fakeProvider struct {
	content string
	err     error
	lastReq providers.ChatRequest
}

func (f *fakeProvider) Chat(_ context.Context, req providers.ChatRequest) (*providers.ChatResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &providers.ChatResponse{Content: f.content}, nil
}

func (f *fakeProvider) DefaultModel() string { return "fake" }
func (f *fakeProvider) Name() string         { return "fake" }

func newClassifier(p providers.Provider) (*Classifier, *history.Store) {
	store := history.NewStore(10)
	return New(p, "router-model", store, kb.NewStore()), store
}

func TestClassify_LabelClosure(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"clean label", "menu", "menu"},
		{"upper case", "MENU", "menu"},
		{"trailing punctuation", "booking.", "booking"},
		{"quoted", `"entrance"`, "entrance"},
		{"multi word keeps first", "complaint — клиент недоволен", "complaint"},
		{"empty output", "", kb.LabelOther},
		{"unknown word", "swimming", kb.LabelOther},
		{"whitespace only", "   \n ", kb.LabelOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newClassifier(&fakeProvider{content: tt.raw})
			got := c.Classify(context.Background(), "chat", "вопрос")
			if got != tt.want {
				t.Errorf("Classify(raw=%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClassify_BackendErrorDegradesToOther(t *testing.T) {
	c, _ := newClassifier(&fakeProvider{err: errors.New("connection refused")})
	got := c.Classify(context.Background(), "chat", "сколько стоит вход?")
	if got != kb.LabelOther {
		t.Errorf("Classify on backend error = %q, want %q", got, kb.LabelOther)
	}
}

func TestClassify_RequestShape(t *testing.T) {
	fake := &fakeProvider{content: "entrance"}
	c, store := newClassifier(fake)

	store.Append("chat", history.RoleUser, "а батуты есть?")
	store.Append("chat", history.RoleAssistant, "Да, батутная арена с 5 лет!")

	c.Classify(context.Background(), "chat", "сколько стоит?")

	req := fake.lastReq
	if req.Model != "router-model" {
		t.Errorf("model = %q", req.Model)
	}
	if req.Options[providers.OptTemperature] != 0.0 {
		t.Errorf("temperature = %v, want 0", req.Options[providers.OptTemperature])
	}
	if req.Options[providers.OptMaxTokens] != 20 {
		t.Errorf("max_tokens = %v, want 20", req.Options[providers.OptMaxTokens])
	}
	if len(req.Messages) != 2 {
		t.Fatalf("messages = %d, want system+user", len(req.Messages))
	}
	user := req.Messages[1].Content
	if !strings.Contains(user, "Клиент: а батуты есть?") {
		t.Errorf("user prompt missing history context: %q", user)
	}
	if !strings.Contains(user, "Бот: Да, батутная арена") {
		t.Errorf("user prompt missing assistant context: %q", user)
	}
	if !strings.Contains(user, "Новое сообщение клиента: сколько стоит?") {
		t.Errorf("user prompt missing new message: %q", user)
	}
}

func TestClassify_EmptyHistoryMarksNewDialog(t *testing.T) {
	fake := &fakeProvider{content: "general"}
	c, _ := newClassifier(fake)

	c.Classify(context.Background(), "chat", "привет")
	if !strings.Contains(fake.lastReq.Messages[1].Content, "Новый диалог") {
		t.Errorf("fresh conversation must be marked as new dialog: %q", fake.lastReq.Messages[1].Content)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Menu", "menu"},
		{"  booking.  ", "booking"},
		{"'drinks'", "drinks"},
		{"other stuff here", "other"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
