package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestInsertedObjectID(t *testing.T) {
	want := primitive.NewObjectID()
	got, err := insertedObjectID(&mongo.InsertOneResult{InsertedID: want})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInsertedObjectIDBadType(t *testing.T) {
	// A non-ObjectID insert result must produce an error, never (nil, nil).
	got, err := insertedObjectID(&mongo.InsertOneResult{InsertedID: "some-string-id"})
	require.Error(t, err)
	assert.Equal(t, primitive.NilObjectID, got)
}
