package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nextlevelbuilder/parkbot/internal/channels/telegram"
	"github.com/nextlevelbuilder/parkbot/internal/config"
	"github.com/nextlevelbuilder/parkbot/internal/escalate"
	"github.com/nextlevelbuilder/parkbot/internal/history"
	"github.com/nextlevelbuilder/parkbot/internal/kb"
	"github.com/nextlevelbuilder/parkbot/internal/pipeline"
	"github.com/nextlevelbuilder/parkbot/internal/providers"
	"github.com/nextlevelbuilder/parkbot/internal/router"
	"github.com/nextlevelbuilder/parkbot/internal/specialist"
)

// evictionInterval is how often idle conversations are swept.
const evictionInterval = time.Hour

func runBot() {
	// Setup structured logging
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Load config
	cfgPath := resolveConfigPath()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// LLM backend: both stages go through one OpenRouter-compatible provider.
	provider := providers.NewOpenAIProvider(
		"openrouter",
		cfg.OpenRouter.APIKey,
		cfg.OpenRouter.APIBase,
		cfg.Models.Specialist,
	).WithTimeout(cfg.RequestTimeout())

	// Knowledge base: built-in content, optionally overlaid from a file.
	knowledge := kb.NewStore()
	if cfg.Knowledge.Path != "" {
		if err := knowledge.LoadFile(cfg.Knowledge.Path); err != nil {
			slog.Warn("knowledge file load failed, using built-in content",
				"path", cfg.Knowledge.Path, "error", err)
		} else {
			slog.Info("knowledge file loaded", "path", cfg.Knowledge.Path)
		}
	}

	store := history.NewStore(cfg.Pipeline.HistoryLimit)

	// Telegram channel
	channel, err := telegram.New(cfg.Telegram.Token)
	if err != nil {
		slog.Error("failed to create telegram channel", "error", err)
		os.Exit(1)
	}

	pipe := pipeline.New(pipeline.Deps{
		Classifier: router.New(provider, cfg.Models.Router, store, knowledge),
		Responder:  specialist.New(provider, cfg.Models.Specialist, store, knowledge),
		Store:      store,
		Notifier:   escalate.New(channel, cfg.Manager.ChatID, store),
		Transport:  channel,
		Debounce:   cfg.Debounce(),
	})
	channel.AttachPipeline(pipe)

	if cfg.Manager.ChatID == "" {
		slog.Warn("manager chat not configured, escalations will be logged only")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return channel.Start(ctx)
	})

	g.Go(func() error {
		store.RunEviction(ctx, evictionInterval, cfg.IdleTTL())
		return nil
	})

	if cfg.Knowledge.Path != "" {
		g.Go(func() error {
			err := knowledge.Watch(ctx, cfg.Knowledge.Path)
			if err != nil && err != context.Canceled {
				slog.Warn("knowledge watcher unavailable", "error", err)
			}
			return nil
		})
	}

	slog.Info("parkbot started",
		"version", Version,
		"router_model", cfg.Models.Router,
		"specialist_model", cfg.Models.Specialist,
		"debounce", cfg.Debounce(),
	)

	<-ctx.Done()
	slog.Info("graceful shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := channel.Stop(shutdownCtx); err != nil {
		slog.Warn("channel stop failed", "error", err)
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("parkbot stopped")
}
