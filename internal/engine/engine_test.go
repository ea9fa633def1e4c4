package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/platewise/platewise/internal/classify"
	"github.com/platewise/platewise/internal/common"
	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/service"
	"github.com/platewise/platewise/internal/storage"
	"github.com/platewise/platewise/internal/taxonomy"
	"github.com/platewise/platewise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGoals() []model.Goal {
	return []model.Goal{
		{Title: "A", Why: "w", How: "h", Fallback: "f"},
		{Title: "B", Why: "w", How: "h", Fallback: "f"},
		{Title: "C", Why: "w", How: "h", Fallback: "f"},
	}
}

func newTestEngine(t *testing.T, store *storage.SQLiteStorage, gen *mockGenerator, notif *mockNotifier) *Engine {
	t.Helper()

	cfg := Config{
		Store:      store,
		Classifier: classify.New(taxonomy.Default()),
		RetryOpts:  service.RetryOptions{MaxAttempts: 1},
	}
	if gen != nil {
		cfg.Generator = gen
	}
	if notif != nil {
		cfg.Notifier = notif
	}

	eng, err := New(cfg)
	require.NoError(t, err)
	return eng
}

func TestProcessPhotoItems(t *testing.T) {
	store := testutil.SetupTestDB(t)
	eng := newTestEngine(t, store, nil, nil)
	ctx := context.Background()

	photo := &model.Photo{
		ID:      "photo-1",
		UserID:  "user-1",
		TakenAt: time.Date(2025, 8, 9, 12, 0, 0, 0, time.UTC),
		Status:  model.PhotoUploaded,
	}
	output := model.VisionOutput{
		PhotoID: "photo-1",
		OCRText: "Contains whole grain oats",
		Items: []model.RawDetection{
			{RawLabel: "banana", Confidence: 0.95},
			{RawLabel: "cola", Confidence: 0.8, Packaged: true},
			{RawLabel: "mystery stew", Confidence: 0.4, TaxonomyHint: "vegetables"},
		},
	}

	result, err := eng.ProcessPhotoItems(ctx, photo, output)
	require.NoError(t, err)

	require.Len(t, result.Items, 3)
	assert.Equal(t, model.CategoryFruit, result.Items[0].Category)
	assert.Equal(t, model.CategorySugaryDrinks, result.Items[1].Category)
	assert.Equal(t, model.CategoryVegetables, result.Items[2].Category)

	// Day and month totals were awaited, not fired and forgotten.
	assert.Equal(t, 1, result.DayTotal.Counts.Get(model.CategoryFruit))
	assert.Equal(t, model.Month("2025-08"), result.MonthTotal.Month)
	assert.True(t, result.MonthTotal.HasFlag(model.FlagLowFibre))
	assert.True(t, result.MonthTotal.HasFlag(model.FlagHighFibreCerealPresent))

	items, err := store.GetPhotoItems(ctx, "photo-1")
	require.NoError(t, err)
	assert.Len(t, items, 3)

	stored, err := store.GetPhoto(ctx, "photo-1")
	require.NoError(t, err)
	assert.Equal(t, model.PhotoDone, stored.Status)
	assert.Equal(t, output.OCRText, stored.OCRText)
}

func TestProcessPhotoItemsAccumulatesAcrossPhotos(t *testing.T) {
	store := testutil.SetupTestDB(t)
	eng := newTestEngine(t, store, nil, nil)
	ctx := context.Background()
	takenAt := time.Date(2025, 8, 9, 8, 0, 0, 0, time.UTC)

	for _, id := range []string{"photo-1", "photo-2"} {
		_, err := eng.ProcessPhotoItems(ctx,
			&model.Photo{ID: id, UserID: "user-1", TakenAt: takenAt, Status: model.PhotoUploaded},
			model.VisionOutput{PhotoID: id, Items: []model.RawDetection{{RawLabel: "apple", Confidence: 0.9}}})
		require.NoError(t, err)
	}

	total, err := store.GetDayTotal(ctx, "user-1", "2025-08-09")
	require.NoError(t, err)
	assert.Equal(t, 2, total.Counts.Get(model.CategoryFruit))
}

func TestProcessPhotoItemsSkipsEmptyLabels(t *testing.T) {
	store := testutil.SetupTestDB(t)
	eng := newTestEngine(t, store, nil, nil)

	result, err := eng.ProcessPhotoItems(context.Background(),
		&model.Photo{ID: "photo-1", UserID: "user-1", TakenAt: time.Date(2025, 8, 9, 8, 0, 0, 0, time.UTC), Status: model.PhotoUploaded},
		model.VisionOutput{PhotoID: "photo-1", Items: []model.RawDetection{
			{RawLabel: "", Confidence: 0.9},
			{RawLabel: "banana", Confidence: 0.9},
		}})
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
}

func TestProcessPhotoItemsEmptyOutputStillSummarizes(t *testing.T) {
	store := testutil.SetupTestDB(t)
	eng := newTestEngine(t, store, nil, nil)
	ctx := context.Background()

	result, err := eng.ProcessPhotoItems(ctx,
		&model.Photo{ID: "photo-1", UserID: "user-1", TakenAt: time.Date(2025, 8, 9, 8, 0, 0, 0, time.UTC), Status: model.PhotoUploaded},
		model.VisionOutput{PhotoID: "photo-1"})
	require.NoError(t, err)

	assert.Empty(t, result.Items)
	// The day row exists and the month total ran rule evaluation.
	_, err = store.GetDayTotal(ctx, "user-1", "2025-08-09")
	require.NoError(t, err)
	assert.True(t, result.MonthTotal.HasFlag(model.FlagLowOmega3))
}

func TestGenerateGoals(t *testing.T) {
	store := testutil.SetupTestDB(t)
	gen := &mockGenerator{goals: testGoals()}
	notif := &mockNotifier{}
	eng := newTestEngine(t, store, gen, notif)
	ctx := context.Background()

	_, err := eng.ProcessPhotoItems(ctx,
		&model.Photo{ID: "photo-1", UserID: "user-1", TakenAt: time.Date(2025, 8, 9, 8, 0, 0, 0, time.UTC), Status: model.PhotoUploaded},
		model.VisionOutput{PhotoID: "photo-1", Items: []model.RawDetection{
			{RawLabel: "cola", Confidence: 0.9},
			{RawLabel: "lemonade", Confidence: 0.9},
		}})
	require.NoError(t, err)

	set, err := eng.GenerateGoals(ctx, "user-1", "2025-08")
	require.NoError(t, err)
	require.Len(t, set.Goals, 3)

	// The generator saw the month's totals and flags.
	require.Len(t, gen.requests, 1)
	assert.Equal(t, 2, gen.requests[0].Totals["sugary drinks"])
	assert.Contains(t, gen.requests[0].PatternFlags, "HIGH_SUGARY_DRINKS")

	// Persisted and delivered.
	stored, err := store.GetGoalSet(ctx, "user-1", "2025-08")
	require.NoError(t, err)
	assert.Equal(t, set.ID, stored.ID)
	require.Len(t, notif.delivered, 1)
}

func TestGenerateGoalsNoItemsIsNoGoalsYet(t *testing.T) {
	store := testutil.SetupTestDB(t)
	eng := newTestEngine(t, store, &mockGenerator{goals: testGoals()}, nil)

	_, err := eng.GenerateGoals(context.Background(), "user-1", "2025-08")
	assert.ErrorIs(t, err, common.ErrNoItems)
}

func TestGenerateGoalsGeneratorFailureLeavesNoSet(t *testing.T) {
	store := testutil.SetupTestDB(t)
	genErr := errors.New("upstream exploded")
	eng := newTestEngine(t, store, &mockGenerator{err: genErr}, nil)
	ctx := context.Background()

	_, err := eng.ProcessPhotoItems(ctx,
		&model.Photo{ID: "photo-1", UserID: "user-1", TakenAt: time.Date(2025, 8, 9, 8, 0, 0, 0, time.UTC), Status: model.PhotoUploaded},
		model.VisionOutput{PhotoID: "photo-1", Items: []model.RawDetection{{RawLabel: "banana", Confidence: 0.9}}})
	require.NoError(t, err)

	_, err = eng.GenerateGoals(ctx, "user-1", "2025-08")
	assert.ErrorIs(t, err, genErr)

	_, err = store.GetGoalSet(ctx, "user-1", "2025-08")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGenerateGoalsNotifierFailureDoesNotFail(t *testing.T) {
	store := testutil.SetupTestDB(t)
	notif := &mockNotifier{err: errors.New("channel down")}
	eng := newTestEngine(t, store, &mockGenerator{goals: testGoals()}, notif)
	ctx := context.Background()

	_, err := eng.ProcessPhotoItems(ctx,
		&model.Photo{ID: "photo-1", UserID: "user-1", TakenAt: time.Date(2025, 8, 9, 8, 0, 0, 0, time.UTC), Status: model.PhotoUploaded},
		model.VisionOutput{PhotoID: "photo-1", Items: []model.RawDetection{{RawLabel: "banana", Confidence: 0.9}}})
	require.NoError(t, err)

	set, err := eng.GenerateGoals(ctx, "user-1", "2025-08")
	require.NoError(t, err)
	assert.NotNil(t, set)
}
