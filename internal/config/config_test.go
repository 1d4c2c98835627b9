package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json5"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Models.Router != "anthropic/claude-haiku-4.5" {
		t.Errorf("Router = %q", cfg.Models.Router)
	}
	if cfg.Pipeline.DebounceSeconds != 3.0 {
		t.Errorf("DebounceSeconds = %v", cfg.Pipeline.DebounceSeconds)
	}
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parkbot.json5")
	data := `{
		// comments are allowed
		telegram: { token: "file-token" },
		models: { router: "file/router" },
		pipeline: { debounce_seconds: 1.5 },
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PARKBOT_ROUTER_MODEL", "env/router")
	t.Setenv("PARKBOT_DEBOUNCE_SECONDS", "0.5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Telegram.Token != "file-token" {
		t.Errorf("Token = %q, want file value", cfg.Telegram.Token)
	}
	if cfg.Models.Router != "env/router" {
		t.Errorf("Router = %q, want env override", cfg.Models.Router)
	}
	if cfg.Debounce() != 500*time.Millisecond {
		t.Errorf("Debounce = %v, want 500ms", cfg.Debounce())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"missing telegram token", func(c *Config) { c.OpenRouter.APIKey = "k" }, true},
		{"missing api key", func(c *Config) { c.Telegram.Token = "t" }, true},
		{"both present", func(c *Config) { c.Telegram.Token = "t"; c.OpenRouter.APIKey = "k" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ManagerChatOptional(t *testing.T) {
	cfg := Default()
	cfg.Telegram.Token = "t"
	cfg.OpenRouter.APIKey = "k"
	cfg.Manager.ChatID = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("manager chat absence must not be fatal: %v", err)
	}
}
