package models

import (
	"fmt"
	"time"
)

// TimeRange is a named calendar window used when a report query supplies no
// explicit from/to dates.
type TimeRange string

const (
	RangeToday   TimeRange = "today"
	RangeWeek    TimeRange = "week"
	RangeMonth   TimeRange = "month"
	RangeQuarter TimeRange = "quarter"
	RangeYear    TimeRange = "year"
)

// NewTimeRangeFromString parses a time_range token. Empty input defaults to
// RangeWeek.
func NewTimeRangeFromString(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case RangeToday, RangeWeek, RangeMonth, RangeQuarter, RangeYear:
		return TimeRange(s), nil
	case "":
		return RangeWeek, nil
	default:
		return "", fmt.Errorf("invalid time_range: %q", s)
	}
}

// From returns the inclusive start date obtained by subtracting the range's
// calendar offset from now (UTC calendar dates, not fixed durations: a month
// back from March 31 is the calendar month boundary AddDate yields).
func (r TimeRange) From(now time.Time) time.Time {
	day := now.UTC().Truncate(24 * time.Hour)
	switch r {
	case RangeToday:
		return day
	case RangeWeek:
		return day.AddDate(0, 0, -7)
	case RangeMonth:
		return day.AddDate(0, -1, 0)
	case RangeQuarter:
		return day.AddDate(0, -3, 0)
	case RangeYear:
		return day.AddDate(-1, 0, 0)
	default:
		return day
	}
}
