package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/parkbot/internal/config"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and environment health",
		Run: func(cmd *cobra.Command, args []string) {
			runDoctor()
		},
	}
}

func runDoctor() {
	fmt.Println("parkbot doctor")
	fmt.Printf("  Version:  %s\n", Version)
	fmt.Printf("  OS:       %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("  Go:       %s\n", runtime.Version())
	fmt.Println()

	// Config
	cfgPath := resolveConfigPath()
	fmt.Printf("  Config:   %s", cfgPath)
	if _, err := os.Stat(cfgPath); err != nil {
		fmt.Println(" (NOT FOUND, using defaults + env)")
	} else {
		fmt.Println(" (OK)")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  Config load error: %s\n", err)
		return
	}

	fmt.Println()
	fmt.Println("  Credentials:")
	checkSecret("Telegram token", cfg.Telegram.Token)
	checkSecret("OpenRouter key", cfg.OpenRouter.APIKey)

	fmt.Println()
	fmt.Println("  Models:")
	fmt.Printf("    %-12s %s\n", "Router:", cfg.Models.Router)
	fmt.Printf("    %-12s %s\n", "Specialist:", cfg.Models.Specialist)

	fmt.Println()
	fmt.Println("  Escalation:")
	if cfg.Manager.ChatID != "" {
		fmt.Printf("    %-12s %s\n", "Manager:", cfg.Manager.ChatID)
	} else {
		fmt.Printf("    %-12s not configured (escalations logged only)\n", "Manager:")
	}

	fmt.Println()
	fmt.Println("  Knowledge:")
	if cfg.Knowledge.Path == "" {
		fmt.Printf("    %-12s built-in\n", "Source:")
	} else if _, err := os.Stat(cfg.Knowledge.Path); err != nil {
		fmt.Printf("    %-12s %s (NOT FOUND)\n", "Source:", cfg.Knowledge.Path)
	} else {
		fmt.Printf("    %-12s %s (OK)\n", "Source:", cfg.Knowledge.Path)
	}

	fmt.Println()
	fmt.Printf("  Pipeline:   debounce=%s history=%d idle_ttl=%s timeout=%s\n",
		cfg.Debounce(), cfg.Pipeline.HistoryLimit, cfg.IdleTTL(), cfg.RequestTimeout())

	if err := cfg.Validate(); err != nil {
		fmt.Println()
		fmt.Printf("  Validation: FAILED (%s)\n", err)
		return
	}
	fmt.Println()
	fmt.Println("  Validation: OK")
}

func checkSecret(name, value string) {
	if value != "" {
		fmt.Printf("    %-16s configured\n", name+":")
	} else {
		fmt.Printf("    %-16s MISSING\n", name+":")
	}
}
