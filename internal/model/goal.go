package model

import "time"

// Length limits for goal fields, enforced on the goal generator's response.
const (
	GoalTitleMaxLen    = 60
	GoalWhyMaxLen      = 120
	GoalHowMaxLen      = 200
	GoalFallbackMaxLen = 120

	// GoalsPerMonth is the exact number of goals a valid response carries.
	GoalsPerMonth = 3
)

// Goal is one personalized monthly goal produced by the goal generator.
type Goal struct {
	Title    string `json:"title"`
	Why      string `json:"why"`
	How      string `json:"how"`
	Fallback string `json:"fallback"`
}

// GoalSet is the validated set of goals for one user and month. Regeneration
// fully replaces the prior set.
type GoalSet struct {
	CreatedAt time.Time
	ID        string
	UserID    string
	Month     Month
	Goals     []Goal
}
