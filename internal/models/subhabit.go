package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubHabit is one checklist item under a habit. Completing all of a habit's
// sub-habits only drives the parent streak when the auto-complete policy is
// switched on; the checklist is otherwise independent bookkeeping.
type SubHabit struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HabitID   primitive.ObjectID `bson:"habit_id" json:"habit_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name      string             `bson:"name" json:"name"`
	Completed bool               `bson:"completed" json:"completed"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
