package services

import (
	"testing"
	"time"

	"github.com/lawrencejr5/habibee/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPausedTotalIdleTimer(t *testing.T) {
	habit := &models.Habit{Duration: 30, TimerElapsed: 0, TimerStartTime: nil}
	assert.Equal(t, int64(0), pausedTotal(habit, time.Now()))
}

func TestPausedTotalNotRunning(t *testing.T) {
	// Pausing an already paused timer keeps the accumulated seconds.
	habit := &models.Habit{Duration: 30, TimerElapsed: 540, TimerStartTime: nil}
	assert.Equal(t, int64(540), pausedTotal(habit, time.Now()))
}

func TestPausedTotalRunningSegment(t *testing.T) {
	start := time.Now()
	startMillis := start.UnixMilli()
	habit := &models.Habit{Duration: 30, TimerElapsed: 1200, TimerStartTime: &startMillis}

	total := pausedTotal(habit, start.Add(10*time.Second))
	assert.Equal(t, int64(1210), total)
}

func TestPausedTotalClampsToCeiling(t *testing.T) {
	start := time.Now()
	startMillis := start.UnixMilli()
	habit := &models.Habit{Duration: 30, TimerElapsed: 1200, TimerStartTime: &startMillis}

	// 1_000_000ms later the raw total would be 2200s; ceiling is 1800s.
	total := pausedTotal(habit, start.Add(1_000_000*time.Millisecond))
	assert.Equal(t, int64(1800), total)
}

func TestPausedTotalFloorsSubSecond(t *testing.T) {
	start := time.Now()
	startMillis := start.UnixMilli()
	habit := &models.Habit{Duration: 30, TimerElapsed: 100, TimerStartTime: &startMillis}

	// 2.9s of running segment counts as 2 whole seconds.
	total := pausedTotal(habit, start.Add(2900*time.Millisecond))
	assert.Equal(t, int64(102), total)
}

func TestPausedTotalIgnoresFutureStart(t *testing.T) {
	// Clock skew: a start stamp ahead of now contributes nothing.
	start := time.Now().Add(time.Minute).UnixMilli()
	habit := &models.Habit{Duration: 30, TimerElapsed: 250, TimerStartTime: &start}

	assert.Equal(t, int64(250), pausedTotal(habit, time.Now()))
}
