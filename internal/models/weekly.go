package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeeklyStat marks the first time a user's global streak advanced on a given
// calendar date. Append-only; rows are never updated in place. Used to draw
// the weekly-activity strip in the app.
type WeeklyStat struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Day       string             `bson:"day" json:"day"`   // short weekday label, e.g. "Mon"
	Date      string             `bson:"date" json:"date"` // YYYY-MM-DD
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
