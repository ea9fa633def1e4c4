package model

import (
	"fmt"
	"time"
)

// Day is a calendar day in UTC, formatted "2006-01-02". The format sorts
// lexically in date order, which the month aggregator relies on.
type Day string

// ParseDay validates and returns a calendar day.
func ParseDay(s string) (Day, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return "", fmt.Errorf("invalid day %q: %w", s, err)
	}
	return Day(t.Format("2006-01-02")), nil
}

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Format("2006-01-02"))
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time {
	t, _ := time.ParseInLocation("2006-01-02", string(d), time.UTC)
	return t
}

// Month returns the calendar month containing the day.
func (d Day) Month() Month {
	if len(d) < 7 {
		return ""
	}
	return Month(d[:7])
}

func (d Day) String() string { return string(d) }

// Month is a calendar month in UTC, formatted "2006-01".
type Month string

// ParseMonth validates and returns a calendar month.
func ParseMonth(s string) (Month, error) {
	t, err := time.ParseInLocation("2006-01", s, time.UTC)
	if err != nil {
		return "", fmt.Errorf("invalid month %q: %w", s, err)
	}
	return Month(t.Format("2006-01")), nil
}

// MonthOf truncates a timestamp to its UTC calendar month.
func MonthOf(t time.Time) Month {
	return Month(t.UTC().Format("2006-01"))
}

// Bounds returns the first and last day of the month.
func (m Month) Bounds() (first, last Day) {
	start, _ := time.ParseInLocation("2006-01", string(m), time.UTC)
	end := start.AddDate(0, 1, -1)
	return DayOf(start), DayOf(end)
}

// Contains reports whether the day falls inside the month.
func (m Month) Contains(d Day) bool {
	return d.Month() == m
}

func (m Month) String() string { return string(m) }
