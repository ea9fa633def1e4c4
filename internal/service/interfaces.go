// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/platewise/platewise/internal/model"
)

// Storage defines the contract for the persistence layer. Every read
// returns a typed result or an explicit error; "row not found" surfaces as
// common.ErrNotFound rather than a nil-and-no-error pair.
type Storage interface {
	// Photo operations
	SavePhoto(ctx context.Context, photo *model.Photo) error
	GetPhoto(ctx context.Context, id string) (*model.Photo, error)
	UpdatePhotoStatus(ctx context.Context, id string, status model.PhotoStatus) error
	SavePhotoItems(ctx context.Context, items []model.PhotoItem) error
	GetPhotoItems(ctx context.Context, photoID string) ([]model.PhotoItem, error)
	CountItemsForMonth(ctx context.Context, userID string, month model.Month) (int, error)
	DeletePhotosBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Day total operations. IncrementDayTotal must be atomic: concurrent
	// uploads for the same (user, date) accumulate, never clobber.
	IncrementDayTotal(ctx context.Context, userID string, date model.Day, delta model.Counts) (*model.DayTotal, error)
	GetDayTotal(ctx context.Context, userID string, date model.Day) (*model.DayTotal, error)
	ListDayTotals(ctx context.Context, userID string, month model.Month) ([]model.DayTotal, error)
	ListUsersWithDayTotals(ctx context.Context, month model.Month) ([]string, error)

	// Month total operations. Replacement is a full overwrite keyed by
	// (user, month); last completed recompute wins.
	ReplaceMonthTotal(ctx context.Context, total *model.MonthTotal) error
	GetMonthTotal(ctx context.Context, userID string, month model.Month) (*model.MonthTotal, error)

	// OCR text observed on photos taken on the given days, for pattern
	// evaluation.
	GetOCRText(ctx context.Context, userID string, days []model.Day) (string, error)

	// Goal operations
	ReplaceGoalSet(ctx context.Context, set *model.GoalSet) error
	GetGoalSet(ctx context.Context, userID string, month model.Month) (*model.GoalSet, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Notifier delivers generated goals to the user over an external channel.
// The messaging transport itself is out of scope; implementations wrap it.
type Notifier interface {
	NotifyGoals(ctx context.Context, userID string, set *model.GoalSet) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
