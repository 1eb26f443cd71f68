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

// WeeklyStatRepository handles the append-only weekly activity rows.
type WeeklyStatRepository struct {
	collection *mongo.Collection
}

// NewWeeklyStatRepository creates a new instance of WeeklyStatRepository.
func NewWeeklyStatRepository(db *mongo.Database) *WeeklyStatRepository {
	return &WeeklyStatRepository{
		collection: db.Collection("weekly_stats"),
	}
}

// InsertStat appends one row. Rows are never updated in place.
func (r *WeeklyStatRepository) InsertStat(ctx context.Context, stat *models.WeeklyStat) (*models.WeeklyStat, error) {
	stat.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, stat)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", stat.UserID.Hex()).Error("Failed to insert weekly stat")
		return nil, err
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		stat.ID = insertedID
	}
	return stat, nil
}

// GetStatsBetween fetches a user's rows between two date strings, inclusive.
func (r *WeeklyStatRepository) GetStatsBetween(ctx context.Context, userID primitive.ObjectID, from, to string) ([]models.WeeklyStat, error) {
	var stats []models.WeeklyStat

	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": from, "$lte": to},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch weekly stats")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var stat models.WeeklyStat
		if err := cursor.Decode(&stat); err != nil {
			logger.Log.WithError(err).Error("Failed to decode weekly stat")
			return nil, err
		}
		stats = append(stats, stat)
	}

	return stats, nil
}
