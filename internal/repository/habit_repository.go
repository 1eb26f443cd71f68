package repository

import (
	"context"
	"time"

	"github.com/lawrencejr5/habibee/internal/models"
	"github.com/lawrencejr5/habibee/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HabitRepository struct handles database operations related to habits
type HabitRepository struct {
	collection *mongo.Collection
}

// NewHabitRepository creates a new instance of HabitRepository
func NewHabitRepository(db *mongo.Database) *HabitRepository {
	return &HabitRepository{
		collection: db.Collection("habits"),
	}
}

// CreateHabit creates a new habit in the database
func (r *HabitRepository) CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	habit.CreatedAt = time.Now()
	habit.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, habit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert habit")
		return nil, err
	}

	insertedID, err := insertedObjectID(result)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to cast inserted ID")
		return nil, err
	}
	habit.ID = insertedID

	logger.Log.WithField("habit_id", habit.ID.Hex()).Info("Habit created successfully")
	return habit, nil
}

// GetHabitByID fetches a habit by its ID
func (r *HabitRepository) GetHabitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error) {
	var habit models.Habit

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&habit)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Warn("Failed to find habit by ID")
		return nil, err
	}

	return &habit, nil
}

// GetHabitsByUser fetches all habits owned by a user, newest first
func (r *HabitRepository) GetHabitsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Habit, error) {
	var habits []models.Habit

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch habits")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var habit models.Habit
		if err := cursor.Decode(&habit); err != nil {
			logger.Log.WithError(err).Error("Failed to decode habit")
			return nil, err
		}
		habits = append(habits, habit)
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id": userID.Hex(),
		"count":   len(habits),
	}).Info("Habits fetched successfully")

	return habits, nil
}

// UpdateHabitFields applies a partial $set patch to a habit
func (r *HabitRepository) UpdateHabitFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to update habit")
		return err
	}

	return nil
}

// UpdateTimer writes the two timer fields in one patch. Last write wins when
// several devices race on the same habit.
func (r *HabitRepository) UpdateTimer(ctx context.Context, id primitive.ObjectID, elapsed int64, startTime *int64) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"timer_elapsed":    elapsed,
			"timer_start_time": startTime,
			"updated_at":       time.Now(),
		}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to update habit timer")
		return err
	}

	return nil
}

// DeleteHabit deletes a habit from the database by its ID
func (r *HabitRepository) DeleteHabit(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to delete habit")
		return err
	}

	logger.Log.WithField("habit_id", id.Hex()).Info("Habit deleted successfully")
	return nil
}
