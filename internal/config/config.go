// Package config holds the bot configuration: a JSON5 config file overlaid
// by PARKBOT_* environment variables, env taking precedence.
package config

import (
	"errors"
	"time"
)

// Config is the root configuration for the bot process.
type Config struct {
	Telegram   TelegramConfig   `json:"telegram"`
	OpenRouter OpenRouterConfig `json:"openrouter"`
	Models     ModelsConfig     `json:"models"`
	Manager    ManagerConfig    `json:"manager"`
	Pipeline   PipelineConfig   `json:"pipeline"`
	Knowledge  KnowledgeConfig  `json:"knowledge"`
}

// TelegramConfig holds the bot credential.
type TelegramConfig struct {
	Token string `json:"token"`
}

// OpenRouterConfig holds the LLM backend credential and endpoint.
type OpenRouterConfig struct {
	APIKey  string `json:"api_key"`
	APIBase string `json:"api_base"`
}

// ModelsConfig selects the two model identities of the pipeline:
// a cheap/fast router for classification and a higher-quality
// specialist for response generation.
type ModelsConfig struct {
	Router     string `json:"router"`
	Specialist string `json:"specialist"`
}

// ManagerConfig identifies the operator destination for escalations.
// An empty ChatID degrades escalation to a logged no-op.
type ManagerConfig struct {
	ChatID string `json:"chat_id"`
}

// PipelineConfig tunes the aggregation and memory behavior.
type PipelineConfig struct {
	DebounceSeconds       float64 `json:"debounce_seconds"`
	HistoryLimit          int     `json:"history_limit"`
	IdleTTLMinutes        int     `json:"idle_ttl_minutes"`
	RequestTimeoutSeconds int     `json:"request_timeout_seconds"`
}

// KnowledgeConfig points at an optional knowledge base override file.
type KnowledgeConfig struct {
	Path string `json:"path"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		OpenRouter: OpenRouterConfig{
			APIBase: "https://openrouter.ai/api/v1",
		},
		Models: ModelsConfig{
			Router:     "anthropic/claude-haiku-4.5",
			Specialist: "anthropic/claude-sonnet-4",
		},
		Pipeline: PipelineConfig{
			DebounceSeconds:       3.0,
			HistoryLimit:          10,
			IdleTTLMinutes:        24 * 60,
			RequestTimeoutSeconds: 120,
		},
	}
}

// Validate checks required credentials. Called at startup; a non-nil
// error is fatal: the process must not start misconfigured.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return errors.New("telegram token is required (PARKBOT_TELEGRAM_TOKEN)")
	}
	if c.OpenRouter.APIKey == "" {
		return errors.New("openrouter api key is required (PARKBOT_OPENROUTER_API_KEY)")
	}
	return nil
}

// Debounce returns the quiet period as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Pipeline.DebounceSeconds * float64(time.Second))
}

// IdleTTL returns how long a conversation may sit idle before eviction.
func (c *Config) IdleTTL() time.Duration {
	return time.Duration(c.Pipeline.IdleTTLMinutes) * time.Minute
}

// RequestTimeout returns the HTTP timeout for backend calls.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Pipeline.RequestTimeoutSeconds) * time.Second
}
