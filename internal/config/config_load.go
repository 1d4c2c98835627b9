package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/titanous/json5"
)

// Load reads config from a JSON5 file, then overlays env vars.
// A missing file is not an error; env vars alone can configure the bot.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides overlays env vars onto the config.
// Env vars take precedence over file values.
func (c *Config) applyEnvOverrides() {
	envStr := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	envStr("PARKBOT_TELEGRAM_TOKEN", &c.Telegram.Token)
	envStr("PARKBOT_OPENROUTER_API_KEY", &c.OpenRouter.APIKey)
	envStr("PARKBOT_OPENROUTER_API_BASE", &c.OpenRouter.APIBase)
	envStr("PARKBOT_ROUTER_MODEL", &c.Models.Router)
	envStr("PARKBOT_SPECIALIST_MODEL", &c.Models.Specialist)
	envStr("PARKBOT_MANAGER_CHAT_ID", &c.Manager.ChatID)
	envStr("PARKBOT_KNOWLEDGE_FILE", &c.Knowledge.Path)

	if v := os.Getenv("PARKBOT_DEBOUNCE_SECONDS"); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
			c.Pipeline.DebounceSeconds = secs
		}
	}
	if v := os.Getenv("PARKBOT_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Pipeline.HistoryLimit = n
		}
	}
	if v := os.Getenv("PARKBOT_IDLE_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Pipeline.IdleTTLMinutes = n
		}
	}
	if v := os.Getenv("PARKBOT_REQUEST_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Pipeline.RequestTimeoutSeconds = n
		}
	}
}
