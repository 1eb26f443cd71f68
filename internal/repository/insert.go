package repository

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// insertedObjectID extracts the ObjectID assigned by an insert. The driver
// hands back an interface{}, so a failed cast must surface as a real error
// instead of a nil result slipping past the caller's error check.
func insertedObjectID(result *mongo.InsertOneResult) (primitive.ObjectID, error) {
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("failed to cast inserted ID %v", result.InsertedID)
	}
	return id, nil
}
