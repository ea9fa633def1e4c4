package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/platewise/platewise/internal/classify"
	"github.com/platewise/platewise/internal/config"
	"github.com/platewise/platewise/internal/engine"
	"github.com/platewise/platewise/internal/goalgen"
	"github.com/platewise/platewise/internal/notify"
	"github.com/platewise/platewise/internal/storage"
	"github.com/platewise/platewise/internal/taxonomy"
)

// openStorage opens the configured database and runs migrations. The
// caller owns the returned storage and must Close it.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, config.Config, error) {
	cfg := config.Load()
	if err := cfg.EnsureDatabaseDir(); err != nil {
		return nil, cfg, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, cfg, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, cfg, nil
}

func closeStorage(db *storage.SQLiteStorage) {
	if err := db.Close(); err != nil {
		slog.Error("Failed to close database", "error", err)
	}
}

// newEngine wires the pipeline engine. withGenerator controls whether the
// Gemini goal generator is constructed; ingest-only paths skip it so they
// work without an API key.
func newEngine(db *storage.SQLiteStorage, cfg config.Config, withGenerator bool) (*engine.Engine, error) {
	ecfg := engine.Config{
		Store:      db,
		Classifier: classify.New(taxonomy.Default()),
		Notifier:   notify.NewLogNotifier(),
	}

	if withGenerator {
		gen, err := goalgen.NewGeminiClient(goalgen.Config{
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Gemini.Model,
			BaseURL:     cfg.Gemini.BaseURL,
			Temperature: cfg.Gemini.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create goal generator: %w", err)
		}
		ecfg.Generator = gen
	}

	return engine.New(ecfg)
}
