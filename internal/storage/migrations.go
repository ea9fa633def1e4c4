package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS photos (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					taken_at DATETIME,
					storage_path TEXT,
					status TEXT NOT NULL DEFAULT 'uploaded',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_photos_user ON photos(user_id)`,

				`CREATE TABLE IF NOT EXISTS photo_items (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					photo_id TEXT NOT NULL,
					user_id TEXT NOT NULL,
					raw_label TEXT NOT NULL,
					confidence REAL NOT NULL DEFAULT 0,
					packaged INTEGER NOT NULL DEFAULT 0,
					category TEXT NOT NULL,
					date TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (photo_id) REFERENCES photos(id)
				)`,
				`CREATE INDEX idx_photo_items_photo ON photo_items(photo_id)`,
				`CREATE INDEX idx_photo_items_user_date ON photo_items(user_id, date)`,

				`CREATE TABLE IF NOT EXISTS day_summaries (
					user_id TEXT NOT NULL,
					date TEXT NOT NULL,
					totals TEXT NOT NULL,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (user_id, date)
				)`,

				`CREATE TABLE IF NOT EXISTS month_summaries (
					user_id TEXT NOT NULL,
					month TEXT NOT NULL,
					totals TEXT NOT NULL,
					pattern_flags TEXT NOT NULL DEFAULT '[]',
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (user_id, month)
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Goal sets",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS goal_sets (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					month TEXT NOT NULL,
					goals TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(user_id, month)
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "OCR text on photos",
		Up: func(tx *sql.Tx) error {
			if _, err := tx.Exec(`ALTER TABLE photos ADD COLUMN ocr_text TEXT NOT NULL DEFAULT ''`); err != nil {
				return fmt.Errorf("failed to add ocr_text column: %w", err)
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
