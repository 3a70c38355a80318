package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
	"github.com/JonnyWalker81/vibecheck/backend/internal/service"
	"github.com/JonnyWalker81/vibecheck/backend/internal/storage"
)

var seedDemoCmd = &cobra.Command{
	Use:   "seed-demo",
	Short: "Create the demo account and its sample week",
	RunE:  runSeedDemo,
}

func runSeedDemo(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	store, err := storage.Open(cmd.Context(), cfg.Storage, cfg.Supabase)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	demo := service.NewDemoService(store.Users(), store.MoodEntries(), store.Activities())
	creds, err := demo.SeedDemo(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Demo user ready: %s / %s (%s)\n", creds.Email, creds.Password, creds.Username)
	return nil
}
