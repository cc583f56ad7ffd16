package persistence

import (
	"context"
	"fmt"

	"github.com/meatshop/backend/internal/infrastructure/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names in the remote document store
const (
	AddressCollection      = "addresses"
	OrderCollection        = "orders"
	OrderHistoryCollection = "orderHistory"
)

// ConnectMongo opens and verifies a connection to the document store
func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(cfg.Database), nil
}

// EnsureIndexes creates the indexes the repositories rely on. User-scoped
// lookups dominate every collection; history additionally sorts by creation
// time for eviction.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		AddressCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		OrderCollection: {
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		},
		OrderHistoryCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
