package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Habit represents one user-defined recurring task with its streak counters
// and timer state. The timer is reconstructed from two persisted fields
// (timer_start_time + timer_elapsed) instead of any server-side clock.
type Habit struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name          string             `bson:"name" json:"name"`
	Icon          string             `bson:"icon" json:"icon"`
	Color         string             `bson:"color" json:"color"`
	Duration      int64              `bson:"duration" json:"duration"` // target duration in minutes
	Goal          int64              `bson:"goal" json:"goal"`         // target streak length
	Strict        bool               `bson:"strict" json:"strict"`
	CurrentStreak int64              `bson:"current_streak" json:"current_streak"`
	HighestStreak int64              `bson:"highest_streak" json:"highest_streak"`
	LastCompleted string             `bson:"lastCompleted,omitempty" json:"lastCompleted,omitempty"` // YYYY-MM-DD

	// TimerStartTime is epoch millis of the running segment's start; nil means
	// the timer is idle or paused. TimerElapsed holds whole seconds
	// accumulated by previous paused segments.
	TimerStartTime *int64 `bson:"timer_start_time" json:"timer_start_time"`
	TimerElapsed   int64  `bson:"timer_elapsed" json:"timer_elapsed"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TimerCeiling is the maximum elapsed seconds a session can record.
func (h *Habit) TimerCeiling() int64 {
	return h.Duration * 60
}

// LiveElapsedAt projects the timer's elapsed seconds at the given instant
// without touching the store. While paused it is frozen at TimerElapsed;
// while running the current segment is added and the total clamps to the
// habit's duration ceiling.
func (h *Habit) LiveElapsedAt(now time.Time) int64 {
	elapsed := h.TimerElapsed
	if h.TimerStartTime != nil {
		segment := (now.UnixMilli() - *h.TimerStartTime) / 1000
		if segment > 0 {
			elapsed += segment
		}
	}
	if ceiling := h.TimerCeiling(); elapsed > ceiling {
		return ceiling
	}
	return elapsed
}

// HabitUpdate is the field mask for partial habit edits. Only non-nil fields
// are written, so the contract stays statically checkable instead of passing
// a loose map around.
type HabitUpdate struct {
	Name     *string `json:"name,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	Color    *string `json:"color,omitempty"`
	Duration *int64  `json:"duration,omitempty"`
	Goal     *int64  `json:"goal,omitempty"`
	Strict   *bool   `json:"strict,omitempty"`
}

// Fields returns the bson document of the fields actually present in the mask.
func (u *HabitUpdate) Fields() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Icon != nil {
		set["icon"] = *u.Icon
	}
	if u.Color != nil {
		set["color"] = *u.Color
	}
	if u.Duration != nil {
		set["duration"] = *u.Duration
	}
	if u.Goal != nil {
		set["goal"] = *u.Goal
	}
	if u.Strict != nil {
		set["strict"] = *u.Strict
	}
	return set
}
