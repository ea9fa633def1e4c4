package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/platewise/platewise/internal/common"
	"github.com/platewise/platewise/internal/model"
)

// ReplaceGoalSet fully overwrites the goal set for (user, month).
func (s *SQLiteStorage) ReplaceGoalSet(ctx context.Context, set *model.GoalSet) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoalSet(set); err != nil {
		return err
	}

	encoded, err := json.Marshal(set.Goals)
	if err != nil {
		return common.NewStorageError("replace goal set", fmt.Errorf("failed to marshal goals: %w", err))
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM goal_sets WHERE user_id = ? AND month = ?`,
			set.UserID, set.Month); err != nil {
			return fmt.Errorf("failed to delete prior goal set: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO goal_sets (id, user_id, month, goals)
			VALUES (?, ?, ?, ?)`,
			set.ID, set.UserID, set.Month, string(encoded)); err != nil {
			return fmt.Errorf("failed to insert goal set: %w", err)
		}
		return nil
	})
	if err != nil {
		return common.NewStorageError("replace goal set", err)
	}

	slog.Info("saved goal set", "user_id", set.UserID, "month", set.Month)
	return nil
}

// GetGoalSet returns the goal set for (userID, month), or common.ErrNotFound.
func (s *SQLiteStorage) GetGoalSet(ctx context.Context, userID string, month model.Month) (*model.GoalSet, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var set model.GoalSet
	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, month, goals, created_at
		FROM goal_sets
		WHERE user_id = ? AND month = ?`,
		userID, month).Scan(&set.ID, &set.UserID, &set.Month, &raw, &set.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("goal set %s/%s: %w", userID, month, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewStorageError("get goal set", err)
	}

	if err := json.Unmarshal([]byte(raw), &set.Goals); err != nil {
		return nil, common.NewStorageError("get goal set", fmt.Errorf("failed to unmarshal goals: %w", err))
	}
	return &set, nil
}
