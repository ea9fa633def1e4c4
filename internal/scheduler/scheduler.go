// Package scheduler runs the periodic maintenance jobs: a nightly month
// recompute backstop and the photo retention purge. The inline pipeline
// keeps totals current on every upload; the nightly pass catches months
// whose last recompute was interrupted.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/platewise/platewise/internal/engine"
	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/service"
)

// Default schedules, overridable through config.
const (
	DefaultRecomputeSchedule = "30 2 * * *"
	DefaultPurgeSchedule     = "0 3 * * *"
	DefaultRetentionDays     = 90
)

// Config controls job schedules and photo retention.
type Config struct {
	RecomputeSchedule string
	PurgeSchedule     string
	RetentionDays     int
}

func (c Config) withDefaults() Config {
	if c.RecomputeSchedule == "" {
		c.RecomputeSchedule = DefaultRecomputeSchedule
	}
	if c.PurgeSchedule == "" {
		c.PurgeSchedule = DefaultPurgeSchedule
	}
	if c.RetentionDays <= 0 {
		c.RetentionDays = DefaultRetentionDays
	}
	return c
}

// Scheduler owns the cron runner and the two maintenance jobs.
type Scheduler struct {
	cron   *cron.Cron
	engine *engine.Engine
	store  service.Storage
	cfg    Config
}

// New creates a scheduler; call Start to register and run the jobs.
func New(eng *engine.Engine, store service.Storage, cfg Config) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		engine: eng,
		store:  store,
		cfg:    cfg.withDefaults(),
	}
}

// Start registers the jobs and starts the cron runner. Jobs run until
// Stop is called; ctx bounds each individual run.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.RecomputeSchedule, func() {
		if err := s.RecomputeAll(ctx, model.MonthOf(time.Now().UTC())); err != nil {
			slog.Error("nightly recompute failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("register recompute job: %w", err)
	}

	if _, err := s.cron.AddFunc(s.cfg.PurgeSchedule, func() {
		if _, err := s.PurgeOldPhotos(ctx, time.Now().UTC()); err != nil {
			slog.Error("photo purge failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("register purge job: %w", err)
	}

	s.cron.Start()
	slog.Info("scheduler started",
		"recompute_schedule", s.cfg.RecomputeSchedule,
		"purge_schedule", s.cfg.PurgeSchedule,
		"retention_days", s.cfg.RetentionDays)
	return nil
}

// Stop halts the cron runner and waits for in-flight jobs.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(10 * time.Second):
		slog.Warn("scheduler stop timed out waiting for running jobs")
	}
	slog.Info("scheduler stopped")
}

// RecomputeAll rebuilds the month total for every user with day totals in
// the given month. A failure for one user is logged and does not stop the
// pass for the others.
func (s *Scheduler) RecomputeAll(ctx context.Context, month model.Month) error {
	users, err := s.store.ListUsersWithDayTotals(ctx, month)
	if err != nil {
		return fmt.Errorf("list users for %s: %w", month, err)
	}

	var failed int
	for _, userID := range users {
		if _, err := s.engine.RecomputeMonth(ctx, userID, month); err != nil {
			slog.Error("recompute failed", "user_id", userID, "month", month, "error", err)
			failed++
		}
	}

	slog.Info("nightly recompute complete", "month", month, "users", len(users), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("recompute %s: %d of %d users failed", month, failed, len(users))
	}
	return nil
}

// PurgeOldPhotos deletes photos and their items taken before the retention
// window. Day and month totals are untouched: summaries outlive the photos
// they were derived from.
func (s *Scheduler) PurgeOldPhotos(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.AddDate(0, 0, -s.cfg.RetentionDays)
	deleted, err := s.store.DeletePhotosBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge photos before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	slog.Info("photo purge complete", "cutoff", cutoff, "deleted", deleted)
	return deleted, nil
}
