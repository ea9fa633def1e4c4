package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/platewise/internal/classify"
	"github.com/platewise/platewise/internal/common"
	"github.com/platewise/platewise/internal/engine"
	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/service"
	"github.com/platewise/platewise/internal/storage"
	"github.com/platewise/platewise/internal/taxonomy"
	"github.com/platewise/platewise/internal/testutil"
)

func setupScheduler(t *testing.T, cfg Config) (*Scheduler, *storage.SQLiteStorage) {
	t.Helper()

	store := testutil.SetupTestDB(t)
	eng, err := engine.New(engine.Config{
		Store:      store,
		Classifier: classify.New(taxonomy.Default()),
	})
	require.NoError(t, err)
	return New(eng, store, cfg), store
}

func seedDay(t *testing.T, store service.Storage, userID string, date model.Day, counts model.Counts) {
	t.Helper()

	_, err := store.IncrementDayTotal(context.Background(), userID, date, counts)
	require.NoError(t, err)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, DefaultRecomputeSchedule, cfg.RecomputeSchedule)
	assert.Equal(t, DefaultPurgeSchedule, cfg.PurgeSchedule)
	assert.Equal(t, DefaultRetentionDays, cfg.RetentionDays)

	custom := Config{RecomputeSchedule: "0 4 * * *", RetentionDays: 30}.withDefaults()
	assert.Equal(t, "0 4 * * *", custom.RecomputeSchedule)
	assert.Equal(t, 30, custom.RetentionDays)
}

func TestRecomputeAllCoversEveryUser(t *testing.T) {
	sched, store := setupScheduler(t, Config{})
	ctx := context.Background()
	month := model.Month("2026-08")

	seedDay(t, store, "user-1", "2026-08-05", model.Counts{model.CategoryFruit: 3})
	seedDay(t, store, "user-2", "2026-08-10", model.Counts{model.CategorySugaryDrinks: 2})

	require.NoError(t, sched.RecomputeAll(ctx, month))

	total1, err := store.GetMonthTotal(ctx, "user-1", month)
	require.NoError(t, err)
	assert.Equal(t, 3, total1.Counts.Get(model.CategoryFruit))

	total2, err := store.GetMonthTotal(ctx, "user-2", month)
	require.NoError(t, err)
	assert.True(t, total2.HasFlag(model.FlagHighSugaryDrinks))
}

func TestRecomputeAllEmptyMonth(t *testing.T) {
	sched, _ := setupScheduler(t, Config{})

	require.NoError(t, sched.RecomputeAll(context.Background(), model.Month("2026-08")))
}

func TestPurgeOldPhotosKeepsSummaries(t *testing.T) {
	sched, store := setupScheduler(t, Config{RetentionDays: 90})
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 3, 0, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -120)

	require.NoError(t, store.SavePhoto(ctx, &model.Photo{
		ID:      "photo-old",
		UserID:  "user-1",
		TakenAt: old,
		Status:  model.PhotoDone,
	}))
	require.NoError(t, store.SavePhotoItems(ctx, []model.PhotoItem{{
		PhotoID:  "photo-old",
		UserID:   "user-1",
		RawLabel: "banana",
		Category: model.CategoryFruit,
		Date:     model.DayOf(old),
	}}))
	require.NoError(t, store.SavePhoto(ctx, &model.Photo{
		ID:      "photo-recent",
		UserID:  "user-1",
		TakenAt: now.AddDate(0, 0, -1),
		Status:  model.PhotoDone,
	}))
	seedDay(t, store, "user-1", model.DayOf(old), model.Counts{model.CategoryFruit: 1})

	deleted, err := sched.PurgeOldPhotos(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = store.GetPhoto(ctx, "photo-old")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.GetPhoto(ctx, "photo-recent")
	assert.NoError(t, err)

	// The derived day total outlives the purged photo.
	total, err := store.GetDayTotal(ctx, "user-1", model.DayOf(old))
	require.NoError(t, err)
	assert.Equal(t, 1, total.Counts.Get(model.CategoryFruit))
}

func TestPurgeNothingToDelete(t *testing.T) {
	sched, _ := setupScheduler(t, Config{})

	deleted, err := sched.PurgeOldPhotos(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestStartAndStop(t *testing.T) {
	sched, _ := setupScheduler(t, Config{})

	require.NoError(t, sched.Start(context.Background()))
	sched.Stop()
}

func TestStartRejectsBadSchedule(t *testing.T) {
	sched, _ := setupScheduler(t, Config{RecomputeSchedule: "not a schedule"})

	assert.Error(t, sched.Start(context.Background()))
}
