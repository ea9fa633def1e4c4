package engine

import (
	"context"

	"github.com/platewise/platewise/internal/goalgen"
	"github.com/platewise/platewise/internal/model"
)

// mockGenerator returns canned goals and records the requests it saw.
type mockGenerator struct {
	err      error
	goals    []model.Goal
	requests []goalgen.Request
}

func (m *mockGenerator) Generate(_ context.Context, req goalgen.Request) ([]model.Goal, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.goals, nil
}

// mockNotifier records deliveries.
type mockNotifier struct {
	err       error
	delivered []*model.GoalSet
}

func (m *mockNotifier) NotifyGoals(_ context.Context, _ string, set *model.GoalSet) error {
	if m.err != nil {
		return m.err
	}
	m.delivered = append(m.delivered, set)
	return nil
}
