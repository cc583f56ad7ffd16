package persistence

import (
	"context"
	"fmt"

	"github.com/meatshop/backend/internal/domain/order"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOrderHistoryRepository implements order.HistoryRepository against the
// orderHistory collection.
type MongoOrderHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoOrderHistoryRepository creates a repository bound to the orderHistory collection
func NewMongoOrderHistoryRepository(db *mongo.Database) *MongoOrderHistoryRepository {
	return &MongoOrderHistoryRepository{collection: db.Collection(OrderHistoryCollection)}
}

func (r *MongoOrderHistoryRepository) Insert(ctx context.Context, entry *order.HistoryEntry) error {
	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

func (r *MongoOrderHistoryRepository) FindByUserOldestFirst(ctx context.Context, userID string) ([]order.HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find history entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []order.HistoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history entries: %w", err)
	}
	return entries, nil
}

func (r *MongoOrderHistoryRepository) DeleteByOrderID(ctx context.Context, userID, orderID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "order_id": orderID})
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return nil
}
