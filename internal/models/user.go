package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account. The streak here is the user-level "did I
// complete at least one habit today" counter, distinct from any single
// habit's streak; it advances at most once per calendar day.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Role           string             `bson:"role" json:"role"`
	Streak         int64              `bson:"streak" json:"streak"`
	LastStreakDate string             `bson:"last_streak_date,omitempty" json:"last_streak_date,omitempty"` // YYYY-MM-DD
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

type PublicUser struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
	Streak   int64              `json:"streak"`
}
