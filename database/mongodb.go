package database

import (
	"context"
	"fmt"
	"time"

	"mitra-support-backend/config"
	"mitra-support-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const countersCollection = "usage_counters"

// MongoStore keeps counters in MongoDB, one document per (metric, key).
type MongoStore struct {
	client   *mongo.Client
	counters *mongo.Collection
}

// ConnectMongoDB establishes connection to MongoDB
func ConnectMongoDB(cfg *config.Config) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.BuildDatabaseURI()).
		SetMaxPoolSize(uint64(cfg.Database.MaxConnections)).
		SetMinPoolSize(uint64(cfg.Database.MinConnections)).
		SetMaxConnIdleTime(cfg.Database.MaxIdleTime)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	store := &MongoStore{
		client:   client,
		counters: client.Database(cfg.Database.Name).Collection(countersCollection),
	}

	if err := store.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return store, nil
}

func (s *MongoStore) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "metric", Value: 1},
				{Key: "key", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := s.counters.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create counter indexes: %w", err)
	}
	return nil
}

// Increment adds one to a counter, creating it on first use.
func (s *MongoStore) Increment(ctx context.Context, metric, key string) error {
	filter := bson.D{
		{Key: "metric", Value: metric},
		{Key: "key", Value: key},
	}
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "count", Value: 1}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now().UTC()}}},
	}

	if _, err := s.counters.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to increment %s/%s: %w", metric, key, err)
	}
	return nil
}

// Counters returns every stored counter.
func (s *MongoStore) Counters(ctx context.Context) ([]models.Counter, error) {
	opts := options.Find().SetSort(bson.D{{Key: "metric", Value: 1}, {Key: "key", Value: 1}})
	cursor, err := s.counters.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query counters: %w", err)
	}

	var counters []models.Counter
	if err := cursor.All(ctx, &counters); err != nil {
		return nil, fmt.Errorf("failed to decode counters: %w", err)
	}
	return counters, nil
}

// Ping performs a database health check
func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}

// Close closes the MongoDB connection
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}
