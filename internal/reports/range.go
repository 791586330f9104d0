package reports

import (
	"time"

	"menu-analytics/internal/models"
)

const isoDate = "2006-01-02"

// dateWindow is the resolved inclusive calendar window of one report. Event
// level queries span the full days; rollup queries compare calendar dates.
type dateWindow struct {
	From time.Time
	To   time.Time
}

// EventSpan widens the window to [from 00:00:00, to 23:59:59] for
// timestamp-range queries against event-level tables.
func (w dateWindow) EventSpan() (time.Time, time.Time) {
	return w.From, w.To.Add(24*time.Hour - time.Second)
}

func (w dateWindow) ReportRange() models.ReportRange {
	return models.ReportRange{
		From: w.From.Format(isoDate),
		To:   w.To.Format(isoDate),
	}
}

// resolveWindow applies the date-range rules: explicit from/to win; missing
// boundaries are derived from the time_range token (default week) and the
// current UTC date.
func resolveWindow(now time.Time, fromStr, toStr, timeRange string) (dateWindow, error) {
	today := now.UTC().Truncate(24 * time.Hour)

	token, err := models.NewTimeRangeFromString(timeRange)
	if err != nil {
		return dateWindow{}, errInvalidTimeRange(timeRange, err)
	}

	window := dateWindow{From: token.From(now), To: today}
	if fromStr != "" {
		from, err := time.ParseInLocation(isoDate, fromStr, time.UTC)
		if err != nil {
			return dateWindow{}, errInvalidDate(fromStr, err)
		}
		window.From = from
	}
	if toStr != "" {
		to, err := time.ParseInLocation(isoDate, toStr, time.UTC)
		if err != nil {
			return dateWindow{}, errInvalidDate(toStr, err)
		}
		window.To = to
	}
	if window.To.Before(window.From) {
		return dateWindow{}, errInvalidWindow(window.From.Format(isoDate), window.To.Format(isoDate))
	}
	return window, nil
}
