package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusCompleted is the only status a habit entry currently carries.
const StatusCompleted = "completed"

// HabitEntry is the immutable proof-of-completion record for one
// (habit, calendar day) pair. At most one entry per pair exists; the entries
// collection carries a unique compound index on (habit_id, date).
type HabitEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	HabitID   primitive.ObjectID `bson:"habit_id" json:"habit_id"`
	Status    string             `bson:"status" json:"status"`
	Date      string             `bson:"date" json:"date"` // YYYY-MM-DD, local convention
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
