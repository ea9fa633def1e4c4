package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/platewise/platewise/internal/common"
	"github.com/platewise/platewise/internal/model"
)

// SavePhoto upserts a photo row keyed by its ID.
func (s *SQLiteStorage) SavePhoto(ctx context.Context, photo *model.Photo) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePhoto(photo); err != nil {
		return err
	}

	query := `
		INSERT INTO photos (id, user_id, taken_at, storage_path, ocr_text, status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			taken_at = excluded.taken_at,
			storage_path = excluded.storage_path,
			ocr_text = excluded.ocr_text,
			status = excluded.status`

	_, err := s.db.ExecContext(ctx, query,
		photo.ID, photo.UserID, photo.TakenAt, photo.StoragePath, photo.OCRText, photo.Status)
	if err != nil {
		return common.NewStorageError("save photo", err)
	}

	slog.Debug("saved photo", "photo_id", photo.ID, "user_id", photo.UserID)
	return nil
}

// GetPhoto returns a photo by ID, or common.ErrNotFound.
func (s *SQLiteStorage) GetPhoto(ctx context.Context, id string) (*model.Photo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, taken_at, storage_path, ocr_text, status, created_at
		FROM photos
		WHERE id = ?`

	var photo model.Photo
	var takenAt sql.NullTime
	var storagePath sql.NullString
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&photo.ID, &photo.UserID, &takenAt, &storagePath, &photo.OCRText, &photo.Status, &photo.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("photo %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewStorageError("get photo", err)
	}

	photo.TakenAt = takenAt.Time
	photo.StoragePath = storagePath.String
	return &photo, nil
}

// UpdatePhotoStatus moves a photo through the pipeline states.
func (s *SQLiteStorage) UpdatePhotoStatus(ctx context.Context, id string, status model.PhotoStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE photos SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return common.NewStorageError("update photo status", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("photo %s: %w", id, common.ErrNotFound)
	}
	return nil
}

// SavePhotoItems inserts the classified items for a photo.
func (s *SQLiteStorage) SavePhotoItems(ctx context.Context, items []model.PhotoItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePhotoItems(items); err != nil {
		return err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO photo_items (photo_id, user_id, raw_label, confidence, packaged, category, date)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, item := range items {
			if _, err := stmt.ExecContext(ctx,
				item.PhotoID, item.UserID, item.RawLabel, item.Confidence,
				item.Packaged, item.Category, item.Date); err != nil {
				return fmt.Errorf("failed to insert item %q: %w", item.RawLabel, err)
			}
		}
		return nil
	})
	if err != nil {
		return common.NewStorageError("save photo items", err)
	}

	slog.Debug("saved photo items", "count", len(items), "photo_id", items[0].PhotoID)
	return nil
}

// GetPhotoItems returns the classified items recorded for a photo.
func (s *SQLiteStorage) GetPhotoItems(ctx context.Context, photoID string) ([]model.PhotoItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(photoID, "photoID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, photo_id, user_id, raw_label, confidence, packaged, category, date, created_at
		FROM photo_items
		WHERE photo_id = ?
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, photoID)
	if err != nil {
		return nil, common.NewStorageError("get photo items", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.PhotoItem
	for rows.Next() {
		var item model.PhotoItem
		if err := rows.Scan(&item.ID, &item.PhotoID, &item.UserID, &item.RawLabel,
			&item.Confidence, &item.Packaged, &item.Category, &item.Date, &item.CreatedAt); err != nil {
			return nil, common.NewStorageError("scan photo item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStorageError("iterate photo items", err)
	}
	return items, nil
}

// CountItemsForMonth returns how many classified items exist for a user in
// a month. The goal generator uses this to distinguish "no goals yet" from
// a real month of data.
func (s *SQLiteStorage) CountItemsForMonth(ctx context.Context, userID string, month model.Month) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return 0, err
	}

	first, last := month.Bounds()
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM photo_items
		WHERE user_id = ? AND date >= ? AND date <= ?`,
		userID, first, last).Scan(&count)
	if err != nil {
		return 0, common.NewStorageError("count items for month", err)
	}
	return count, nil
}

// DeletePhotosBefore removes photos taken before the cutoff along with
// their items. Day and month summaries stay intact.
func (s *SQLiteStorage) DeletePhotosBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var deleted int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM photo_items
			WHERE photo_id IN (SELECT id FROM photos WHERE taken_at < ?)`, cutoff); err != nil {
			return fmt.Errorf("failed to delete photo items: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM photos WHERE taken_at < ?`, cutoff)
		if err != nil {
			return fmt.Errorf("failed to delete photos: %w", err)
		}
		deleted, _ = result.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, common.NewStorageError("delete old photos", err)
	}

	if deleted > 0 {
		slog.Info("purged old photos", "count", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}

// GetOCRText returns the package text observed on the user's photos taken
// on the given days, newline-joined, skipping photos without OCR text.
func (s *SQLiteStorage) GetOCRText(ctx context.Context, userID string, days []model.Day) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(userID, "userID"); err != nil {
		return "", err
	}
	if len(days) == 0 {
		return "", nil
	}

	placeholders := strings.Repeat("?,", len(days))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(days)+1)
	args = append(args, userID)
	for _, d := range days {
		args = append(args, d)
	}

	query := fmt.Sprintf(`
		SELECT ocr_text
		FROM photos
		WHERE user_id = ? AND ocr_text != '' AND date(taken_at) IN (%s)
		ORDER BY taken_at`, placeholders)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return "", common.NewStorageError("get ocr text", err)
	}
	defer func() { _ = rows.Close() }()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return "", common.NewStorageError("scan ocr text", err)
		}
		texts = append(texts, text)
	}
	if err := rows.Err(); err != nil {
		return "", common.NewStorageError("iterate ocr text", err)
	}
	return strings.Join(texts, "\n"), nil
}
