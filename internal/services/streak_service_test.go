package services

import (
	"testing"

	"github.com/lawrencejr5/habibee/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func init() {
	logger.InitLogger()
}

func TestAdvanceStreak(t *testing.T) {
	current, highest := advanceStreak(0, 0)
	assert.Equal(t, int64(1), current)
	assert.Equal(t, int64(1), highest)

	// Below the high-water mark, only current moves.
	current, highest = advanceStreak(2, 7)
	assert.Equal(t, int64(3), current)
	assert.Equal(t, int64(7), highest)

	// At the mark, both move together.
	current, highest = advanceStreak(7, 7)
	assert.Equal(t, int64(8), current)
	assert.Equal(t, int64(8), highest)
}

func TestAdvanceStreakKeepsInvariant(t *testing.T) {
	current, highest := int64(0), int64(0)
	for i := 0; i < 50; i++ {
		current, highest = advanceStreak(current, highest)
		assert.GreaterOrEqual(t, highest, current)
	}
	assert.Equal(t, int64(50), current)
}

func TestStreakBroken(t *testing.T) {
	tests := []struct {
		name     string
		lastDate string
		today    string
		want     bool
	}{
		{"completed today", "2024-01-10", "2024-01-10", false},
		{"completed yesterday", "2024-01-10", "2024-01-11", false},
		{"one full day missed", "2024-01-10", "2024-01-12", true},
		{"a week missed", "2024-01-10", "2024-01-17", true},
		{"month boundary still alive", "2024-01-31", "2024-02-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, streakBroken(tt.lastDate, tt.today))
		})
	}
}

func TestStreakBrokenUnparseableDate(t *testing.T) {
	// A corrupt date must never wipe a streak.
	assert.False(t, streakBroken("garbage", "2024-01-12"))
}
