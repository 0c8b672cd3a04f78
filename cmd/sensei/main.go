package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/sensei/internal/config"
	"github.com/mark3labs/sensei/internal/logger"
	"github.com/mark3labs/sensei/internal/tui"
	"github.com/spf13/cobra"
)

// Version set via ldflags during build
var version = "dev"

var rootFlags struct {
	dataDir string
	store   string
}

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sensei",
	Short: "Sports coaching wizard in your terminal",
	RunE:  runWizard,
}

func init() {
	rootCmd.Long = tui.Logo() + `

sensei walks athletes through a short coaching flow: pick a username, a
category and a sport, upload a performance video and read the feedback
report. The username is remembered between runs, in a state file or in an
embedded NATS JetStream bucket.`

	rootCmd.PersistentFlags().StringVar(&rootFlags.dataDir, "data-dir", "", "Data directory for saved state (default: from config or .sensei)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.store, "store", "", "State backend: file, nats or memory (default: from config)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(sportsCmd)
	rootCmd.AddCommand(setupCmd)
}

// loadConfig resolves configuration and applies the persistent flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if rootFlags.dataDir != "" {
		cfg.DataDir = rootFlags.dataDir
	}
	if rootFlags.store != "" {
		cfg.Store = rootFlags.store
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return cfg, nil
}
