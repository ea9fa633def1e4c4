package aggregate

import (
	"context"
	"testing"
	"time"

	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(cat model.Category, label string) model.ClassifiedItem {
	return model.ClassifiedItem{
		Detection: model.RawDetection{RawLabel: label, Confidence: 0.9},
		Category:  cat,
	}
}

func TestAddItemsAdditivity(t *testing.T) {
	ctx := context.Background()
	a := item(model.CategoryFruit, "banana")
	b := item(model.CategorySugaryDrinks, "cola")

	// Two separate calls...
	split := NewDayAggregator(testutil.SetupTestDB(t))
	_, err := split.AddItems(ctx, "user-1", "2025-08-09", []model.ClassifiedItem{a})
	require.NoError(t, err)
	splitTotal, err := split.AddItems(ctx, "user-1", "2025-08-09", []model.ClassifiedItem{b})
	require.NoError(t, err)

	// ...match a single combined call.
	combined := NewDayAggregator(testutil.SetupTestDB(t))
	combinedTotal, err := combined.AddItems(ctx, "user-1", "2025-08-09", []model.ClassifiedItem{a, b})
	require.NoError(t, err)

	assert.Equal(t, combinedTotal.Counts, splitTotal.Counts)
}

func TestAddItemsEmptyEnsuresRow(t *testing.T) {
	store := testutil.SetupTestDB(t)
	agg := NewDayAggregator(store)
	ctx := context.Background()

	total, err := agg.AddItems(ctx, "user-1", "2025-08-09", nil)
	require.NoError(t, err)
	assert.Empty(t, total.Counts)

	stored, err := store.GetDayTotal(ctx, "user-1", "2025-08-09")
	require.NoError(t, err)
	assert.Empty(t, stored.Counts)
}

func TestRecomputeSelectsEarliestThreeDays(t *testing.T) {
	store := testutil.SetupTestDB(t)
	dayAgg := NewDayAggregator(store)
	monthAgg := NewMonthAggregator(store)
	ctx := context.Background()

	// Four days with data, inserted out of order. Only the earliest three
	// may contribute; 08-20 must be ignored.
	days := map[model.Day]model.Category{
		"2025-08-05": model.CategoryFruit,
		"2025-08-01": model.CategoryVegetables,
		"2025-08-12": model.CategoryFruit,
		"2025-08-20": model.CategorySugaryDrinks,
	}
	for date, cat := range days {
		_, err := dayAgg.AddItems(ctx, "user-1", date, []model.ClassifiedItem{item(cat, "x")})
		require.NoError(t, err)
	}

	total, err := monthAgg.Recompute(ctx, "user-1", "2025-08")
	require.NoError(t, err)

	assert.Equal(t, model.Counts{
		model.CategoryFruit:      2,
		model.CategoryVegetables: 1,
	}, total.Counts)
	assert.Equal(t, 0, total.Counts.Get(model.CategorySugaryDrinks))

	// Recompute persisted the replacement.
	stored, err := store.GetMonthTotal(ctx, "user-1", "2025-08")
	require.NoError(t, err)
	assert.Equal(t, total.Counts, stored.Counts)
}

func TestRecomputeZeroDayMonth(t *testing.T) {
	store := testutil.SetupTestDB(t)
	monthAgg := NewMonthAggregator(store)

	total, err := monthAgg.Recompute(context.Background(), "user-1", "2025-08")
	require.NoError(t, err)

	assert.Empty(t, total.Counts)
	assert.Equal(t, []model.PatternFlag{model.FlagLowFibre, model.FlagLowOmega3}, total.Flags)
}

func TestRecomputeFewerThanThreeDays(t *testing.T) {
	store := testutil.SetupTestDB(t)
	dayAgg := NewDayAggregator(store)
	monthAgg := NewMonthAggregator(store)
	ctx := context.Background()

	_, err := dayAgg.AddItems(ctx, "user-1", "2025-08-03", []model.ClassifiedItem{
		item(model.CategoryOilyFish, "mackerel"),
	})
	require.NoError(t, err)

	total, err := monthAgg.Recompute(ctx, "user-1", "2025-08")
	require.NoError(t, err)
	assert.Equal(t, model.Counts{model.CategoryOilyFish: 1}, total.Counts)
	assert.False(t, total.HasFlag(model.FlagLowOmega3))
	assert.True(t, total.HasFlag(model.FlagLowFibre))
}

func TestRecomputeReplacesStaleTotals(t *testing.T) {
	store := testutil.SetupTestDB(t)
	dayAgg := NewDayAggregator(store)
	monthAgg := NewMonthAggregator(store)
	ctx := context.Background()

	_, err := dayAgg.AddItems(ctx, "user-1", "2025-08-01", []model.ClassifiedItem{
		item(model.CategorySugaryDrinks, "cola"),
		item(model.CategorySugaryDrinks, "lemonade"),
	})
	require.NoError(t, err)

	first, err := monthAgg.Recompute(ctx, "user-1", "2025-08")
	require.NoError(t, err)
	assert.True(t, first.HasFlag(model.FlagHighSugaryDrinks))

	// More data on the same day shifts the totals; recompute rebuilds from
	// scratch rather than merging.
	_, err = dayAgg.AddItems(ctx, "user-1", "2025-08-01", []model.ClassifiedItem{
		item(model.CategoryFruit, "apple"),
	})
	require.NoError(t, err)

	second, err := monthAgg.Recompute(ctx, "user-1", "2025-08")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Counts.Get(model.CategoryFruit))
	assert.Equal(t, 2, second.Counts.Get(model.CategorySugaryDrinks))
}

func TestRecomputeUsesOCRFromSelectedDaysOnly(t *testing.T) {
	store := testutil.SetupTestDB(t)
	dayAgg := NewDayAggregator(store)
	monthAgg := NewMonthAggregator(store)
	ctx := context.Background()

	// Day 4 has the only whole-grain OCR text; it is outside the window.
	for i, date := range []model.Day{"2025-08-01", "2025-08-02", "2025-08-03", "2025-08-04"} {
		_, err := dayAgg.AddItems(ctx, "user-1", date, []model.ClassifiedItem{item(model.CategoryFruit, "apple")})
		require.NoError(t, err)

		ocr := ""
		if i == 3 {
			ocr = "whole grain"
		}
		require.NoError(t, store.SavePhoto(ctx, &model.Photo{
			ID:      "photo-" + string(date),
			UserID:  "user-1",
			TakenAt: date.Time().Add(8 * time.Hour),
			OCRText: ocr,
			Status:  model.PhotoDone,
		}))
	}

	total, err := monthAgg.Recompute(ctx, "user-1", "2025-08")
	require.NoError(t, err)
	assert.False(t, total.HasFlag(model.FlagHighFibreCerealPresent))
}
