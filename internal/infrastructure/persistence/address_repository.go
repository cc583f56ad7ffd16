package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	addrdomain "github.com/meatshop/backend/internal/domain/address"
	"github.com/meatshop/backend/internal/domain/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAddressRepository implements address.Repository against the addresses
// collection. Document ids are uuid strings assigned at insert time.
type MongoAddressRepository struct {
	collection *mongo.Collection
}

// NewMongoAddressRepository creates a repository bound to the addresses collection
func NewMongoAddressRepository(db *mongo.Database) *MongoAddressRepository {
	return &MongoAddressRepository{collection: db.Collection(AddressCollection)}
}

func (r *MongoAddressRepository) FindByUser(ctx context.Context, userID string) ([]addrdomain.Address, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to find addresses: %w", err)
	}
	defer cursor.Close(ctx)

	var addrs []addrdomain.Address
	if err := cursor.All(ctx, &addrs); err != nil {
		return nil, fmt.Errorf("failed to decode addresses: %w", err)
	}
	return addrs, nil
}

func (r *MongoAddressRepository) FindByID(ctx context.Context, id string) (*addrdomain.Address, error) {
	var addr addrdomain.Address
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&addr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find address: %w", err)
	}
	return &addr, nil
}

func (r *MongoAddressRepository) Insert(ctx context.Context, addr *addrdomain.Address) (string, error) {
	if addr.ID == "" {
		addr.ID = uuid.NewString()
	}
	if _, err := r.collection.InsertOne(ctx, addr); err != nil {
		return "", fmt.Errorf("failed to insert address: %w", err)
	}
	return addr.ID, nil
}

func (r *MongoAddressRepository) Update(ctx context.Context, addr *addrdomain.Address) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": addr.ID}, addr)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}
	if result.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *MongoAddressRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if result.DeletedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *MongoAddressRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count addresses: %w", err)
	}
	return count, nil
}

func (r *MongoAddressRepository) FindDefaultByUser(ctx context.Context, userID string) ([]addrdomain.Address, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID, "is_default": true})
	if err != nil {
		return nil, fmt.Errorf("failed to find default addresses: %w", err)
	}
	defer cursor.Close(ctx)

	var addrs []addrdomain.Address
	if err := cursor.All(ctx, &addrs); err != nil {
		return nil, fmt.Errorf("failed to decode default addresses: %w", err)
	}
	return addrs, nil
}

func (r *MongoAddressRepository) SetDefaultFlag(ctx context.Context, id string, isDefault bool) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_default": isDefault}},
	)
	if err != nil {
		return fmt.Errorf("failed to set default flag: %w", err)
	}
	if result.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}
