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

func marshalCounts(counts model.Counts) (string, error) {
	if counts == nil {
		counts = model.Counts{}
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return "", fmt.Errorf("failed to marshal counts: %w", err)
	}
	return string(raw), nil
}

func unmarshalCounts(raw string) (model.Counts, error) {
	counts := model.Counts{}
	if err := json.Unmarshal([]byte(raw), &counts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal counts: %w", err)
	}
	return counts, nil
}

func marshalFlags(flags []model.PatternFlag) (string, error) {
	if flags == nil {
		flags = []model.PatternFlag{}
	}
	raw, err := json.Marshal(flags)
	if err != nil {
		return "", fmt.Errorf("failed to marshal flags: %w", err)
	}
	return string(raw), nil
}

func unmarshalFlags(raw string) ([]model.PatternFlag, error) {
	var flags []model.PatternFlag
	if err := json.Unmarshal([]byte(raw), &flags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flags: %w", err)
	}
	return flags, nil
}

// IncrementDayTotal adds delta to the day total for (userID, date),
// creating the row if needed, and returns the updated total. The
// read-modify-write runs inside a transaction so concurrent uploads for the
// same day accumulate instead of clobbering each other.
func (s *SQLiteStorage) IncrementDayTotal(ctx context.Context, userID string, date model.Day, delta model.Counts) (*model.DayTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(string(date), "date"); err != nil {
		return nil, err
	}
	if err := validateCounts(delta); err != nil {
		return nil, err
	}

	var total *model.DayTotal
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		counts := model.Counts{}
		var raw string
		err := tx.QueryRowContext(ctx,
			`SELECT totals FROM day_summaries WHERE user_id = ? AND date = ?`,
			userID, date).Scan(&raw)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// First observation for this day; start from zero.
		case err != nil:
			return fmt.Errorf("failed to read day total: %w", err)
		default:
			if counts, err = unmarshalCounts(raw); err != nil {
				return err
			}
		}

		counts.Merge(delta)

		encoded, err := marshalCounts(counts)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO day_summaries (user_id, date, totals, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(user_id, date) DO UPDATE SET
				totals = excluded.totals,
				updated_at = CURRENT_TIMESTAMP`,
			userID, date, encoded); err != nil {
			return fmt.Errorf("failed to upsert day total: %w", err)
		}

		total = &model.DayTotal{UserID: userID, Date: date, Counts: counts}
		return nil
	})
	if err != nil {
		return nil, common.NewStorageError("increment day total", err)
	}

	slog.Debug("updated day total", "user_id", userID, "date", date, "items", delta.Total())
	return total, nil
}

// GetDayTotal returns the day total for (userID, date), or common.ErrNotFound.
func (s *SQLiteStorage) GetDayTotal(ctx context.Context, userID string, date model.Day) (*model.DayTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var raw string
	var total model.DayTotal
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, date, totals, updated_at
		FROM day_summaries
		WHERE user_id = ? AND date = ?`,
		userID, date).Scan(&total.UserID, &total.Date, &raw, &total.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("day total %s/%s: %w", userID, date, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewStorageError("get day total", err)
	}

	if total.Counts, err = unmarshalCounts(raw); err != nil {
		return nil, common.NewStorageError("get day total", err)
	}
	return &total, nil
}

// ListDayTotals returns all day totals for a user inside a month, ascending
// by date.
func (s *SQLiteStorage) ListDayTotals(ctx context.Context, userID string, month model.Month) ([]model.DayTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	first, last := month.Bounds()
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, date, totals, updated_at
		FROM day_summaries
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`,
		userID, first, last)
	if err != nil {
		return nil, common.NewStorageError("list day totals", err)
	}
	defer func() { _ = rows.Close() }()

	var totals []model.DayTotal
	for rows.Next() {
		var total model.DayTotal
		var raw string
		if err := rows.Scan(&total.UserID, &total.Date, &raw, &total.UpdatedAt); err != nil {
			return nil, common.NewStorageError("scan day total", err)
		}
		if total.Counts, err = unmarshalCounts(raw); err != nil {
			return nil, common.NewStorageError("list day totals", err)
		}
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStorageError("iterate day totals", err)
	}
	return totals, nil
}

// ListUsersWithDayTotals returns the distinct users that have day totals in
// the given month. The batch recompute command iterates this.
func (s *SQLiteStorage) ListUsersWithDayTotals(ctx context.Context, month model.Month) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	first, last := month.Bounds()
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT user_id
		FROM day_summaries
		WHERE date >= ? AND date <= ?
		ORDER BY user_id`,
		first, last)
	if err != nil {
		return nil, common.NewStorageError("list users with day totals", err)
	}
	defer func() { _ = rows.Close() }()

	var users []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, common.NewStorageError("scan user id", err)
		}
		users = append(users, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStorageError("iterate users", err)
	}
	return users, nil
}

// ReplaceMonthTotal fully overwrites the month total for (user, month).
func (s *SQLiteStorage) ReplaceMonthTotal(ctx context.Context, total *model.MonthTotal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if total == nil {
		return fmt.Errorf("%w: total", ErrNilParameter)
	}
	if err := validateString(total.UserID, "total.UserID"); err != nil {
		return err
	}
	if err := validateString(string(total.Month), "total.Month"); err != nil {
		return err
	}
	if err := validateCounts(total.Counts); err != nil {
		return err
	}

	encoded, err := marshalCounts(total.Counts)
	if err != nil {
		return common.NewStorageError("replace month total", err)
	}
	flags, err := marshalFlags(total.Flags)
	if err != nil {
		return common.NewStorageError("replace month total", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO month_summaries (user_id, month, totals, pattern_flags, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, month) DO UPDATE SET
			totals = excluded.totals,
			pattern_flags = excluded.pattern_flags,
			updated_at = CURRENT_TIMESTAMP`,
		total.UserID, total.Month, encoded, flags)
	if err != nil {
		return common.NewStorageError("replace month total", err)
	}

	slog.Debug("replaced month total",
		"user_id", total.UserID,
		"month", total.Month,
		"flags", len(total.Flags))
	return nil
}

// GetMonthTotal returns the month total for (userID, month), or
// common.ErrNotFound.
func (s *SQLiteStorage) GetMonthTotal(ctx context.Context, userID string, month model.Month) (*model.MonthTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var total model.MonthTotal
	var rawCounts, rawFlags string
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, month, totals, pattern_flags, updated_at
		FROM month_summaries
		WHERE user_id = ? AND month = ?`,
		userID, month).Scan(&total.UserID, &total.Month, &rawCounts, &rawFlags, &total.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("month total %s/%s: %w", userID, month, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewStorageError("get month total", err)
	}

	if total.Counts, err = unmarshalCounts(rawCounts); err != nil {
		return nil, common.NewStorageError("get month total", err)
	}
	if total.Flags, err = unmarshalFlags(rawFlags); err != nil {
		return nil, common.NewStorageError("get month total", err)
	}
	return &total, nil
}
