// Package goalgen is the boundary to the external goal generator: it
// serializes month totals into the generator's request payload and
// validates the structured response. It holds no business logic of its own.
package goalgen

import (
	"context"
	"fmt"

	"github.com/platewise/platewise/internal/common"
	"github.com/platewise/platewise/internal/model"
)

// Request is the payload consumed by the goal generator.
type Request struct {
	Totals       map[string]int `json:"totals"`
	PatternFlags []string       `json:"pattern_flags"`
}

// Response is the shape the generator must return.
type Response struct {
	Goals []model.Goal `json:"goals"`
}

// Generator produces personalized goals from a month's totals and flags.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]model.Goal, error)
}

// BuildRequest serializes a month total for the goal generator. Pure
// serialization; counts and flags pass through under their exact persisted
// string names.
func BuildRequest(total *model.MonthTotal) Request {
	req := Request{
		Totals:       make(map[string]int, len(total.Counts)),
		PatternFlags: make([]string, 0, len(total.Flags)),
	}
	for cat, n := range total.Counts {
		req.Totals[string(cat)] = n
	}
	for _, flag := range total.Flags {
		req.PatternFlags = append(req.PatternFlags, string(flag))
	}
	return req
}

// ValidateGoals enforces the response contract: exactly three goals, each
// within the field length limits. Violations surface as a ValidationError,
// distinct from storage errors, so the caller can decide whether to retry
// the external call.
func ValidateGoals(resp Response) ([]model.Goal, error) {
	if len(resp.Goals) != model.GoalsPerMonth {
		return nil, common.NewValidationError("goals",
			fmt.Sprintf("expected exactly %d goals, got %d", model.GoalsPerMonth, len(resp.Goals)))
	}

	limits := []struct {
		field string
		value func(model.Goal) string
		max   int
	}{
		{field: "title", value: func(g model.Goal) string { return g.Title }, max: model.GoalTitleMaxLen},
		{field: "why", value: func(g model.Goal) string { return g.Why }, max: model.GoalWhyMaxLen},
		{field: "how", value: func(g model.Goal) string { return g.How }, max: model.GoalHowMaxLen},
		{field: "fallback", value: func(g model.Goal) string { return g.Fallback }, max: model.GoalFallbackMaxLen},
	}

	for i, goal := range resp.Goals {
		for _, limit := range limits {
			v := limit.value(goal)
			if v == "" {
				return nil, common.NewValidationError(
					fmt.Sprintf("goals[%d].%s", i, limit.field), "must not be empty")
			}
			if n := len([]rune(v)); n > limit.max {
				return nil, common.NewValidationError(
					fmt.Sprintf("goals[%d].%s", i, limit.field),
					fmt.Sprintf("length %d exceeds limit %d", n, limit.max))
			}
		}
	}

	return resp.Goals, nil
}
