package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/vibecheck/backend/internal/config"
	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
	"github.com/JonnyWalker81/vibecheck/backend/internal/repository/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the Postgres schema",
	Long:  `Create the users, mood_entries and activities tables if they do not exist.`,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	if cfg.Storage.Driver != config.DriverPostgres {
		return fmt.Errorf("migrate requires the postgres storage driver, got %q", cfg.Storage.Driver)
	}

	db, err := postgres.Open(cmd.Context(), cfg.Storage.DatabaseURL, cfg.Storage.MaxConns)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	log.Info("Migrations complete")
	return nil
}
