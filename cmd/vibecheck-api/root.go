package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/vibecheck/backend/internal/config"
	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "vibecheck-api",
	Short: "VibeCheck API server",
	Long:  `A REST API server for the VibeCheck mood journal.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedDemoCmd)
}

// loadConfig reads configuration and installs the configured logger as the
// process default
func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:     logger.ParseLevel(cfg.Log.Level),
		Format:    cfg.Log.Format,
		Backend:   cfg.Log.Backend,
		AddSource: cfg.Server.IsDevelopment(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger.SetDefault(log)

	return cfg, log, nil
}
