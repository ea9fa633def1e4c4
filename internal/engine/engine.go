// Package engine orchestrates the photo pipeline: classification, day and
// month aggregation, pattern evaluation, and goal generation. Each stage is
// awaited in order, so by the time a call returns the persisted summaries
// reflect the new items; nothing is fired and forgotten.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/platewise/internal/aggregate"
	"github.com/platewise/platewise/internal/classify"
	"github.com/platewise/platewise/internal/common"
	"github.com/platewise/platewise/internal/goalgen"
	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/service"
)

// Engine wires the pipeline components together.
type Engine struct {
	store      service.Storage
	classifier *classify.Classifier
	days       *aggregate.DayAggregator
	months     *aggregate.MonthAggregator
	generator  goalgen.Generator
	notifier   service.Notifier
	retryOpts  service.RetryOptions
}

// Config holds the engine's collaborators. Generator and Notifier may be
// nil when goal generation isn't needed (e.g. the ingest-only CLI paths).
type Config struct {
	Store      service.Storage
	Classifier *classify.Classifier
	Generator  goalgen.Generator
	Notifier   service.Notifier
	RetryOpts  service.RetryOptions
}

// New creates a pipeline engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("%w: store is required", common.ErrMissingConfig)
	}
	if cfg.Classifier == nil {
		return nil, fmt.Errorf("%w: classifier is required", common.ErrMissingConfig)
	}

	return &Engine{
		store:      cfg.Store,
		classifier: cfg.Classifier,
		days:       aggregate.NewDayAggregator(cfg.Store),
		months:     aggregate.NewMonthAggregator(cfg.Store),
		generator:  cfg.Generator,
		notifier:   cfg.Notifier,
		retryOpts:  cfg.RetryOpts,
	}, nil
}

// Result carries what one pipeline run produced.
type Result struct {
	DayTotal   *model.DayTotal
	MonthTotal *model.MonthTotal
	Items      []model.ClassifiedItem
}

// ProcessPhotoItems runs the full pipeline for one photo's vision output:
// classify every detection, persist the items, fold them into the day
// total, recompute the month total, and evaluate pattern flags. The photo
// row is upserted first and its status tracks the run.
func (e *Engine) ProcessPhotoItems(ctx context.Context, photo *model.Photo, output model.VisionOutput) (*Result, error) {
	photo.OCRText = output.OCRText
	photo.Status = model.PhotoProcessing
	if err := e.store.SavePhoto(ctx, photo); err != nil {
		return nil, err
	}

	result, err := e.process(ctx, photo, output.Items)
	if err != nil {
		if statusErr := e.store.UpdatePhotoStatus(ctx, photo.ID, model.PhotoError); statusErr != nil {
			slog.Warn("failed to mark photo as errored", "photo_id", photo.ID, "error", statusErr)
		}
		return nil, err
	}

	if err := e.store.UpdatePhotoStatus(ctx, photo.ID, model.PhotoDone); err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Engine) process(ctx context.Context, photo *model.Photo, detections []model.RawDetection) (*Result, error) {
	date := model.DayOf(photo.TakenAt)
	month := date.Month()

	items := make([]model.ClassifiedItem, 0, len(detections))
	rows := make([]model.PhotoItem, 0, len(detections))
	for _, det := range detections {
		if det.RawLabel == "" {
			slog.Warn("skipping detection with empty label", "photo_id", photo.ID)
			continue
		}
		item := e.classifier.Resolve(det)
		items = append(items, item)
		rows = append(rows, model.PhotoItem{
			PhotoID:    photo.ID,
			UserID:     photo.UserID,
			RawLabel:   det.RawLabel,
			Confidence: det.Confidence,
			Packaged:   det.Packaged,
			Category:   item.Category,
			Date:       date,
		})
	}

	if len(rows) > 0 {
		if err := e.store.SavePhotoItems(ctx, rows); err != nil {
			return nil, err
		}
	}

	// Summarization is awaited and retried; a photo only reaches "done"
	// once its day and month totals reflect it.
	var dayTotal *model.DayTotal
	err := common.WithRetry(ctx, func() error {
		var addErr error
		dayTotal, addErr = e.days.AddItems(ctx, photo.UserID, date, items)
		return addErr
	}, e.retryOpts)
	if err != nil {
		return nil, fmt.Errorf("day aggregation for %s: %w", date, err)
	}

	var monthTotal *model.MonthTotal
	err = common.WithRetry(ctx, func() error {
		var recErr error
		monthTotal, recErr = e.months.Recompute(ctx, photo.UserID, month)
		return recErr
	}, e.retryOpts)
	if err != nil {
		return nil, fmt.Errorf("month aggregation for %s: %w", month, err)
	}

	slog.Info("processed photo",
		"photo_id", photo.ID,
		"user_id", photo.UserID,
		"items", len(items),
		"date", date,
		"flags", monthTotal.Flags)

	return &Result{
		Items:      items,
		DayTotal:   dayTotal,
		MonthTotal: monthTotal,
	}, nil
}

// RecomputeMonth rebuilds one user's month total outside the photo flow,
// for the batch command and the nightly scheduler backstop.
func (e *Engine) RecomputeMonth(ctx context.Context, userID string, month model.Month) (*model.MonthTotal, error) {
	return e.months.Recompute(ctx, userID, month)
}

// EnsureDay makes sure a day total row exists for (user, date) and returns
// it, without adding any items.
func (e *Engine) EnsureDay(ctx context.Context, userID string, date model.Day) (*model.DayTotal, error) {
	return e.days.AddItems(ctx, userID, date, nil)
}

// GenerateGoals builds the goal request for a month, calls the external
// generator, validates and persists the result, and hands it to the
// notifier. A month without any classified items returns common.ErrNoItems:
// callers present that as the valid "no goals yet" state, not a failure.
func (e *Engine) GenerateGoals(ctx context.Context, userID string, month model.Month) (*model.GoalSet, error) {
	if e.generator == nil {
		return nil, fmt.Errorf("%w: goal generator not configured", common.ErrMissingConfig)
	}

	count, err := e.store.CountItemsForMonth(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("user %s month %s: %w", userID, month, common.ErrNoItems)
	}

	total, err := e.store.GetMonthTotal(ctx, userID, month)
	if errors.Is(err, common.ErrNotFound) {
		total, err = e.months.Recompute(ctx, userID, month)
	}
	if err != nil {
		return nil, err
	}

	goals, err := e.generator.Generate(ctx, goalgen.BuildRequest(total))
	if err != nil {
		return nil, err
	}

	set := &model.GoalSet{
		ID:        uuid.NewString(),
		UserID:    userID,
		Month:     month,
		Goals:     goals,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.store.ReplaceGoalSet(ctx, set); err != nil {
		return nil, err
	}

	if e.notifier != nil {
		if err := e.notifier.NotifyGoals(ctx, userID, set); err != nil {
			// Goals are already persisted; delivery can be re-attempted later.
			slog.Warn("goal notification failed", "user_id", userID, "month", month, "error", err)
		}
	}

	return set, nil
}
