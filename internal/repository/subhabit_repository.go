package repository

import (
	"context"
	"time"

	"github.com/lawrencejr5/habibee/internal/models"
	"github.com/lawrencejr5/habibee/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubHabitRepository handles database operations for sub-habit checklist items.
type SubHabitRepository struct {
	collection *mongo.Collection
}

// NewSubHabitRepository creates a new instance of SubHabitRepository.
func NewSubHabitRepository(db *mongo.Database) *SubHabitRepository {
	return &SubHabitRepository{
		collection: db.Collection("subhabits"),
	}
}

// CreateSubHabit inserts a new checklist item.
func (r *SubHabitRepository) CreateSubHabit(ctx context.Context, sub *models.SubHabit) (*models.SubHabit, error) {
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert sub-habit")
		return nil, err
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		sub.ID = insertedID
	}
	return sub, nil
}

// GetSubHabitByID fetches one checklist item.
func (r *SubHabitRepository) GetSubHabitByID(ctx context.Context, id primitive.ObjectID) (*models.SubHabit, error) {
	var sub models.SubHabit
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindByHabitAndName looks for a name collision under the same parent habit.
func (r *SubHabitRepository) FindByHabitAndName(ctx context.Context, habitID primitive.ObjectID, name string) (*models.SubHabit, error) {
	var sub models.SubHabit
	err := r.collection.FindOne(ctx, bson.M{"habit_id": habitID, "name": name}).Decode(&sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetSubHabitsByHabit fetches all checklist items of a habit.
func (r *SubHabitRepository) GetSubHabitsByHabit(ctx context.Context, habitID primitive.ObjectID) ([]models.SubHabit, error) {
	var subs []models.SubHabit

	cursor, err := r.collection.Find(ctx, bson.M{"habit_id": habitID})
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", habitID.Hex()).Error("Failed to fetch sub-habits")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var sub models.SubHabit
		if err := cursor.Decode(&sub); err != nil {
			logger.Log.WithError(err).Error("Failed to decode sub-habit")
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, nil
}

// SetCompleted flips the completed flag of one checklist item.
func (r *SubHabitRepository) SetCompleted(ctx context.Context, id primitive.ObjectID, completed bool) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"completed":  completed,
		"updated_at": time.Now(),
	}})
	if err != nil {
		logger.Log.WithError(err).WithField("subhabit_id", id.Hex()).Error("Failed to update sub-habit")
		return err
	}
	return nil
}

// ResetByHabit unchecks every item under a habit. Done externally (e.g. a new
// day), not by the streak engine.
func (r *SubHabitRepository) ResetByHabit(ctx context.Context, habitID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx, bson.M{"habit_id": habitID}, bson.M{"$set": bson.M{
		"completed":  false,
		"updated_at": time.Now(),
	}})
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", habitID.Hex()).Error("Failed to reset sub-habits")
		return err
	}
	return nil
}

// DeleteSubHabit removes one checklist item.
func (r *SubHabitRepository) DeleteSubHabit(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("subhabit_id", id.Hex()).Error("Failed to delete sub-habit")
		return err
	}
	return nil
}

// DeleteByHabit removes all checklist items of a habit, as part of the
// habit's cascade delete.
func (r *SubHabitRepository) DeleteByHabit(ctx context.Context, habitID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"habit_id": habitID})
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", habitID.Hex()).Error("Failed to delete sub-habits")
		return err
	}
	return nil
}
