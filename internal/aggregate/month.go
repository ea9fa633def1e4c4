package aggregate

import (
	"context"
	"log/slog"

	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/rules"
	"github.com/platewise/platewise/internal/service"
)

// EvaluationWindowDays is how many of the month's earliest days with data
// feed the month total. The short window is a deliberate product choice: a
// monthly snapshot of the user's first logged days, not a running total.
const EvaluationWindowDays = 3

// MonthAggregator recomputes month totals from day totals.
type MonthAggregator struct {
	store service.Storage
}

// NewMonthAggregator creates a month aggregator backed by the given storage.
func NewMonthAggregator(store service.Storage) *MonthAggregator {
	return &MonthAggregator{store: store}
}

// Recompute rebuilds the month total for (userID, month) from scratch:
// the earliest EvaluationWindowDays distinct days with data are summed
// elementwise, pattern flags are evaluated over the result, and the row is
// persisted as a full replacement. A month with no data still produces a
// total (all-zero counts) and still runs rule evaluation, so the
// zero-is-low flags fire rather than the month silently missing.
func (a *MonthAggregator) Recompute(ctx context.Context, userID string, month model.Month) (*model.MonthTotal, error) {
	days, err := a.store.ListDayTotals(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	if len(days) > EvaluationWindowDays {
		days = days[:EvaluationWindowDays]
	}

	counts := model.Counts{}
	selected := make([]model.Day, 0, len(days))
	for _, day := range days {
		counts.Merge(day.Counts)
		selected = append(selected, day.Date)
	}

	ocrText, err := a.store.GetOCRText(ctx, userID, selected)
	if err != nil {
		return nil, err
	}

	total := &model.MonthTotal{
		UserID: userID,
		Month:  month,
		Counts: counts,
		Flags:  rules.Evaluate(counts, ocrText),
	}

	if err := a.store.ReplaceMonthTotal(ctx, total); err != nil {
		return nil, err
	}

	slog.Debug("recomputed month total",
		"user_id", userID,
		"month", month,
		"days_selected", len(selected),
		"flags", total.Flags)
	return total, nil
}
