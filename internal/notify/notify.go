// Package notify carries generated goals to the user. The actual messaging
// transport (WhatsApp bridge) lives outside this repo; LogNotifier is the
// shipped implementation and records deliveries to the log.
package notify

import (
	"context"
	"log/slog"

	"github.com/platewise/platewise/internal/model"
)

// LogNotifier implements service.Notifier by logging the delivery.
type LogNotifier struct{}

// NewLogNotifier creates a logging notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// NotifyGoals records the goal delivery.
func (n *LogNotifier) NotifyGoals(_ context.Context, userID string, set *model.GoalSet) error {
	titles := make([]string, 0, len(set.Goals))
	for _, goal := range set.Goals {
		titles = append(titles, goal.Title)
	}
	slog.Info("goals ready for delivery",
		"user_id", userID,
		"month", set.Month,
		"goals", titles)
	return nil
}
