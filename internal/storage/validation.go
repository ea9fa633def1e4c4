package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/platewise/platewise/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrEmptySlice     = errors.New("slice cannot be empty")
	ErrInvalidPhoto   = errors.New("invalid photo")
	ErrInvalidItem    = errors.New("invalid photo item")
	ErrInvalidCounts  = errors.New("invalid counts")
	ErrInvalidGoalSet = errors.New("invalid goal set")
	ErrInvalidStatus  = errors.New("invalid photo status")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validatePhoto validates a single photo.
func validatePhoto(photo *model.Photo) error {
	if photo == nil {
		return fmt.Errorf("%w: photo", ErrNilParameter)
	}
	if photo.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidPhoto)
	}
	if photo.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidPhoto)
	}
	switch photo.Status {
	case model.PhotoUploaded, model.PhotoProcessing, model.PhotoDone, model.PhotoError:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidStatus, photo.Status)
	}
	return nil
}

// validatePhotoItems validates a slice of photo items.
func validatePhotoItems(items []model.PhotoItem) error {
	if items == nil {
		return fmt.Errorf("%w: items", ErrNilParameter)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: items", ErrEmptySlice)
	}
	for i, item := range items {
		if err := validatePhotoItem(&item); err != nil {
			return fmt.Errorf("item at index %d: %w", i, err)
		}
	}
	return nil
}

// validatePhotoItem validates a single photo item.
func validatePhotoItem(item *model.PhotoItem) error {
	if item == nil {
		return fmt.Errorf("%w: item", ErrNilParameter)
	}
	if item.PhotoID == "" {
		return fmt.Errorf("%w: missing photo ID", ErrInvalidItem)
	}
	if item.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidItem)
	}
	if item.RawLabel == "" {
		return fmt.Errorf("%w: missing raw label", ErrInvalidItem)
	}
	if item.Category == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidItem)
	}
	if item.Date == "" {
		return fmt.Errorf("%w: missing date", ErrInvalidItem)
	}
	if item.Confidence < 0 || item.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be between 0 and 1", ErrInvalidItem)
	}
	return nil
}

// validateCounts ensures a counts map carries no empty keys or negative values.
func validateCounts(counts model.Counts) error {
	for cat, n := range counts {
		if cat == "" {
			return fmt.Errorf("%w: empty category key", ErrInvalidCounts)
		}
		if n < 0 {
			return fmt.Errorf("%w: negative count for %q", ErrInvalidCounts, cat)
		}
	}
	return nil
}

// validateGoalSet validates a goal set before persistence.
func validateGoalSet(set *model.GoalSet) error {
	if set == nil {
		return fmt.Errorf("%w: goal set", ErrNilParameter)
	}
	if set.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidGoalSet)
	}
	if set.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidGoalSet)
	}
	if set.Month == "" {
		return fmt.Errorf("%w: missing month", ErrInvalidGoalSet)
	}
	if len(set.Goals) != model.GoalsPerMonth {
		return fmt.Errorf("%w: expected %d goals, got %d", ErrInvalidGoalSet, model.GoalsPerMonth, len(set.Goals))
	}
	return nil
}
