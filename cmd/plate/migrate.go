package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/platewise/platewise/internal/config"
	"github.com/platewise/platewise/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.
Other commands migrate on startup too; this just does nothing else.`,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if err := cfg.EnsureDatabaseDir(); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	slog.Info("Running database migrations",
		"database", cfg.Database.Path,
		"target_version", storage.ExpectedSchemaVersion)

	db, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStorage(db)

	if err := db.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("Database migrations completed")
	return nil
}
