package resultstore

import (
	"context"
	"fmt"
	"time"

	"triagesim/database"
	"triagesim/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoResultStore implements ResultStore against a "runs" collection.
type MongoResultStore struct {
	runColl *mongo.Collection
}

// NewMongoResultStore constructs a MongoResultStore using the package-level
// database.MongoClient, which must already be initialized.
func NewMongoResultStore() *MongoResultStore {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoResultStore{runColl: db.Collection(database.RunsCollection)}
}

func (s *MongoResultStore) SaveRun(ctx context.Context, result *models.RunResult) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"runId": result.RunID}
	update := bson.M{"$set": result}
	opts := mongo.UpdateOptions{}
	opts.Upsert = boolPtr(true)
	if _, err := s.runColl.UpdateOne(ctx, filter, update, &opts); err != nil {
		return fmt.Errorf("error saving run %s: %w", result.RunID, err)
	}
	return nil
}

func (s *MongoResultStore) GetRun(ctx context.Context, runID string) (*models.RunResult, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var result models.RunResult
	filter := bson.M{"runId": runID}
	if err := s.runColl.FindOne(ctx, filter).Decode(&result); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("run %s not found", runID)
		}
		return nil, fmt.Errorf("error fetching run %s: %w", runID, err)
	}
	return &result, nil
}

func boolPtr(b bool) *bool { return &b }
