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

// EntryRepository handles database operations for completion entries.
type EntryRepository struct {
	collection *mongo.Collection
}

// NewEntryRepository creates a new instance of EntryRepository.
func NewEntryRepository(db *mongo.Database) *EntryRepository {
	return &EntryRepository{
		collection: db.Collection("entries"),
	}
}

// InsertEntry inserts one immutable completion entry.
func (r *EntryRepository) InsertEntry(ctx context.Context, entry *models.HabitEntry) (*models.HabitEntry, error) {
	entry.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", entry.HabitID.Hex()).Error("Failed to insert entry")
		return nil, err
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = insertedID
	}

	logger.Log.WithFields(map[string]interface{}{
		"habit_id": entry.HabitID.Hex(),
		"date":     entry.Date,
	}).Info("Completion entry recorded")
	return entry, nil
}

// FindByHabitAndDate looks up the entry for a (habit, date) pair. Returns
// mongo.ErrNoDocuments when the habit has no completion on that day.
func (r *EntryRepository) FindByHabitAndDate(ctx context.Context, habitID primitive.ObjectID, date string) (*models.HabitEntry, error) {
	var entry models.HabitEntry
	err := r.collection.FindOne(ctx, bson.M{"habit_id": habitID, "date": date}).Decode(&entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetEntriesByHabit fetches all entries of a habit, newest first.
func (r *EntryRepository) GetEntriesByHabit(ctx context.Context, habitID primitive.ObjectID) ([]models.HabitEntry, error) {
	var entries []models.HabitEntry

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"habit_id": habitID}, findOptions)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", habitID.Hex()).Error("Failed to fetch entries")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var entry models.HabitEntry
		if err := cursor.Decode(&entry); err != nil {
			logger.Log.WithError(err).Error("Failed to decode entry")
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// DeleteByHabit removes every entry of a habit. Called before the habit
// itself is deleted so no orphaned entries remain.
func (r *EntryRepository) DeleteByHabit(ctx context.Context, habitID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"habit_id": habitID})
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", habitID.Hex()).Error("Failed to delete entries")
		return 0, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"habit_id": habitID.Hex(),
		"count":    result.DeletedCount,
	}).Info("Entries deleted with habit")
	return result.DeletedCount, nil
}
