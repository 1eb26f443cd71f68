package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"same day", "2024-01-10", "2024-01-10", 0},
		{"consecutive days", "2024-01-10", "2024-01-11", 1},
		{"two day gap", "2024-01-10", "2024-01-12", 2},
		{"reversed arguments", "2024-01-12", "2024-01-10", 2},
		{"across month boundary", "2024-01-31", "2024-02-01", 1},
		{"across year boundary", "2023-12-31", "2024-01-01", 1},
		{"leap day", "2024-02-28", "2024-03-01", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DayDiff(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayDiffInvalid(t *testing.T) {
	_, err := DayDiff("not-a-date", "2024-01-10")
	assert.Error(t, err)

	_, err = DayDiff("2024-01-10", "10/01/2024")
	assert.Error(t, err)
}

func TestWeekdayOf(t *testing.T) {
	// 2024-01-10 was a Wednesday.
	day, err := WeekdayOf("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "Wed", day)

	day, err = WeekdayOf("2024-01-14")
	require.NoError(t, err)
	assert.Equal(t, "Sun", day)
}

func TestWeekStart(t *testing.T) {
	// Weeks start on Sunday.
	start, err := WeekStart("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-07", start)

	// A Sunday is its own week start.
	start, err = WeekStart("2024-01-07")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-07", start)
}

func TestToday(t *testing.T) {
	got := Today(time.UTC)
	assert.Equal(t, time.Now().UTC().Format(Layout), got)
}
