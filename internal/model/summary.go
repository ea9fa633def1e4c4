package model

import "time"

// DayTotal holds per-category counts of classified items observed for one
// user on one calendar day. Rows accumulate across uploads and are upserted
// keyed by (user, date).
type DayTotal struct {
	UpdatedAt time.Time
	UserID    string
	Date      Day
	Counts    Counts
}

// MonthTotal holds per-category counts for one user and month, summed over
// the earliest three distinct days with data in that month, plus the pattern
// flags derived from those counts. Recomputation fully replaces the row.
type MonthTotal struct {
	UpdatedAt time.Time
	UserID    string
	Month     Month
	Counts    Counts
	Flags     []PatternFlag
}

// HasFlag reports whether the month total carries the given pattern flag.
func (m *MonthTotal) HasFlag(flag PatternFlag) bool {
	for _, f := range m.Flags {
		if f == flag {
			return true
		}
	}
	return false
}
