package database

import (
	"context"
	"log"
	"time"

	"triagesim/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DatabaseName is the single database every run result is written into.
const DatabaseName = "triagesim"

// RunsCollection is the name of the collection resultstore upserts run
// results into, keyed by runId.
const RunsCollection = "runs"

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// InitDB initializes the MongoDB connection and ensures the runs
// collection has a unique index on runId, the field resultstore upserts
// against. Fatal on failure: a run that was configured to persist its
// result has no graceful degradation path once the database is
// unreachable.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.MongoURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping MongoDB: %v", err)
	}
	MongoClient = client

	runColl := client.Database(DatabaseName).Collection(RunsCollection)
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "runId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := runColl.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Fatalf("failed to ensure runId index: %v", err)
	}

	log.Println("Connected to MongoDB successfully!")
}
