package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meatshop/backend/internal/domain/order"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoOrderRepository implements order.Repository against the orders
// collection. Orders are write-only from this subsystem.
type MongoOrderRepository struct {
	collection *mongo.Collection
}

// NewMongoOrderRepository creates a repository bound to the orders collection
func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{collection: db.Collection(OrderCollection)}
}

func (r *MongoOrderRepository) Insert(ctx context.Context, o *order.Order) (string, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if _, err := r.collection.InsertOne(ctx, o); err != nil {
		return "", fmt.Errorf("failed to insert order: %w", err)
	}
	return o.ID, nil
}
