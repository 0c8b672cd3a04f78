package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/sensei/internal/config"
	"github.com/mark3labs/sensei/internal/logger"
	"github.com/mark3labs/sensei/internal/storage"
	"github.com/mark3labs/sensei/internal/tui"
	"github.com/mark3labs/sensei/internal/upload"
	"github.com/mark3labs/sensei/internal/wizard"
	"github.com/spf13/cobra"
)

var runFlags struct {
	ephemeral bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the coaching wizard",
	Long: `Start the full-screen coaching wizard.

A remembered username skips straight to the home screen. Use --ephemeral to
keep nothing between runs.`,
	RunE: runWizard,
}

func init() {
	runCmd.Flags().BoolVar(&runFlags.ephemeral, "ephemeral", false, "Keep state in memory only")
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runFlags.ephemeral {
		cfg.Store = config.StoreMemory
	}
	if !config.Exists() {
		logger.Info("No config file at %s or %s, using defaults (run 'sensei setup' to create one)",
			config.GlobalPath(), config.ProjectPath())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		}
	}()

	ctrl := wizard.New(ctx, store)
	defer func() { _ = ctrl.Close() }()

	logger.Info("Starting wizard (store=%s, step=%s)", cfg.Store, ctrl.Step())
	return tui.Run(ctx, ctrl, newUploader(cfg), cfg.MaxUploadMB)
}

func newUploader(cfg *config.Config) upload.Uploader {
	return &upload.Simulated{
		Interval:  cfg.UploadInterval,
		Increment: cfg.UploadIncrement,
		Duration:  cfg.UploadDuration,
		MaxSize:   cfg.MaxUploadBytes(),
	}
}

// withStore opens the configured store for a one-shot command.
func withStore(ctx context.Context, fn func(storage.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	defer func() { _ = closeStore() }()
	return fn(store)
}
