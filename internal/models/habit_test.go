package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLiveElapsedAtPaused(t *testing.T) {
	habit := &Habit{Duration: 30, TimerElapsed: 1200, TimerStartTime: nil}

	// Frozen while paused, no matter how much time passes.
	assert.Equal(t, int64(1200), habit.LiveElapsedAt(time.Now()))
	assert.Equal(t, int64(1200), habit.LiveElapsedAt(time.Now().Add(time.Hour)))
}

func TestLiveElapsedAtRunning(t *testing.T) {
	start := time.Now()
	startMillis := start.UnixMilli()
	habit := &Habit{Duration: 30, TimerElapsed: 1200, TimerStartTime: &startMillis}

	// 10 seconds into the running segment: 1200 + 10, under the 1800 ceiling.
	assert.Equal(t, int64(1210), habit.LiveElapsedAt(start.Add(10_000*time.Millisecond)))

	// 1000 seconds in would be 2200; clamps to duration*60.
	assert.Equal(t, int64(1800), habit.LiveElapsedAt(start.Add(1_000_000*time.Millisecond)))
}

func TestLiveElapsedAtMonotonic(t *testing.T) {
	start := time.Now()
	startMillis := start.UnixMilli()
	habit := &Habit{Duration: 30, TimerElapsed: 600, TimerStartTime: &startMillis}

	prev := int64(-1)
	for s := 0; s <= 2400; s += 60 {
		got := habit.LiveElapsedAt(start.Add(time.Duration(s) * time.Second))
		assert.GreaterOrEqual(t, got, prev)
		assert.LessOrEqual(t, got, habit.TimerCeiling())
		prev = got
	}
}

func TestLiveElapsedAtClockSkew(t *testing.T) {
	// A start stamp in the future must not shrink the elapsed total.
	start := time.Now().Add(time.Minute).UnixMilli()
	habit := &Habit{Duration: 30, TimerElapsed: 300, TimerStartTime: &start}

	assert.Equal(t, int64(300), habit.LiveElapsedAt(time.Now()))
}

func TestHabitUpdateFields(t *testing.T) {
	name := "Read"
	duration := int64(45)
	strict := true

	update := &HabitUpdate{Name: &name, Duration: &duration, Strict: &strict}
	fields := update.Fields()

	assert.Len(t, fields, 3)
	assert.Equal(t, "Read", fields["name"])
	assert.Equal(t, int64(45), fields["duration"])
	assert.Equal(t, true, fields["strict"])

	// Absent fields stay absent; an empty mask writes nothing.
	assert.NotContains(t, fields, "icon")
	assert.Empty(t, (&HabitUpdate{}).Fields())
}
