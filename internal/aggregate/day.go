// Package aggregate turns classified items into per-day and per-month
// category totals. All operations are synchronous upserts against the
// storage layer; retry policy stays with the caller.
package aggregate

import (
	"context"
	"log/slog"

	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/service"
)

// DayAggregator accumulates classified items into day totals.
type DayAggregator struct {
	store service.Storage
}

// NewDayAggregator creates a day aggregator backed by the given storage.
func NewDayAggregator(store service.Storage) *DayAggregator {
	return &DayAggregator{store: store}
}

// AddItems increments the day total for (userID, date) by one count per
// item, and returns the updated total. Counts accumulate across calls, so
// several photos on the same day add up. An empty item list is a no-op that
// still ensures the day total row exists.
func (a *DayAggregator) AddItems(ctx context.Context, userID string, date model.Day, items []model.ClassifiedItem) (*model.DayTotal, error) {
	delta := model.Counts{}
	for _, item := range items {
		delta.Add(item.Category, 1)
	}

	total, err := a.store.IncrementDayTotal(ctx, userID, date, delta)
	if err != nil {
		return nil, err
	}

	slog.Debug("aggregated day items",
		"user_id", userID,
		"date", date,
		"added", len(items),
		"day_total", total.Counts.Total())
	return total, nil
}
