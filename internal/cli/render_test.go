package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platewise/platewise/internal/model"
)

func TestRenderCountsOrdersByCountThenName(t *testing.T) {
	out := RenderCounts(model.Counts{
		model.CategoryFruit:      1,
		model.CategoryVegetables: 3,
		model.CategoryWater:      3,
		model.CategoryDairy:      0,
	})

	// vegetables and water tie at 3 and sort alphabetically, fruit follows.
	vegIdx := indexOf(t, out, "vegetables")
	waterIdx := indexOf(t, out, "water")
	fruitIdx := indexOf(t, out, "fruit")
	assert.Less(t, vegIdx, waterIdx)
	assert.Less(t, waterIdx, fruitIdx)
	assert.NotContains(t, out, "dairy")
}

func TestRenderCountsEmpty(t *testing.T) {
	assert.Contains(t, RenderCounts(model.Counts{}), "no items")
}

func TestRenderMonthTotalShowsFlags(t *testing.T) {
	out := RenderMonthTotal(&model.MonthTotal{
		UserID: "user-1",
		Month:  "2026-08",
		Counts: model.Counts{model.CategoryFruit: 2},
		Flags:  []model.PatternFlag{model.FlagLowFibre, model.FlagLowOmega3},
	})

	assert.Contains(t, out, "2026-08")
	assert.Contains(t, out, "LOW_FIBRE")
	assert.Contains(t, out, "LOW_OMEGA3")
}

func TestRenderMonthTotalNoFlags(t *testing.T) {
	out := RenderMonthTotal(&model.MonthTotal{
		UserID: "user-1",
		Month:  "2026-08",
		Counts: model.Counts{model.CategoryFruit: 5},
	})

	assert.Contains(t, out, "no pattern flags")
}

func TestRenderGoalSet(t *testing.T) {
	out := RenderGoalSet(&model.GoalSet{
		Month: "2026-08",
		Goals: []model.Goal{
			{Title: "Add a fruit to breakfast", Why: "w", How: "h", Fallback: "f"},
			{Title: "Swap one soda for water", Why: "w", How: "h", Fallback: "f"},
		},
	})

	assert.Contains(t, out, "Add a fruit to breakfast")
	assert.Contains(t, out, "Swap one soda for water")
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	if idx < 0 {
		t.Fatalf("%q not found in output", needle)
	}
	return idx
}
