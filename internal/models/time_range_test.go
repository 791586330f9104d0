package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeRangeFromString(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"today", "week", "month", "quarter", "year"} {
		r, err := NewTimeRangeFromString(valid)
		require.NoError(t, err)
		assert.Equal(t, TimeRange(valid), r)
	}

	r, err := NewTimeRangeFromString("")
	require.NoError(t, err)
	assert.Equal(t, RangeWeek, r)

	_, err = NewTimeRangeFromString("fortnight")
	assert.Error(t, err)
}

func TestTimeRange_From(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), RangeToday.From(now))
	assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), RangeWeek.From(now))
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), RangeMonth.From(now))
	assert.Equal(t, time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC), RangeQuarter.From(now))
	assert.Equal(t, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), RangeYear.From(now))
}

func TestTimeRange_FromUsesCalendarMonths(t *testing.T) {
	t.Parallel()

	// AddDate on calendar months: a month back from May 31 normalizes past
	// April's end.
	now := time.Date(2024, 5, 31, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), RangeMonth.From(now))
}
