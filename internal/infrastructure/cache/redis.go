package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	cartdomain "github.com/meatshop/backend/internal/domain/cart"
	"github.com/redis/go-redis/v9"
)

// RedisCartStorage persists cart snapshots as JSON values in redis. Entries
// carry no TTL: a cart must survive restarts until it is cleared by checkout
// or by the shopper.
type RedisCartStorage struct {
	client *redis.Client
}

// NewRedisCartStorage creates a cart storage backed by the given client
func NewRedisCartStorage(client *redis.Client) *RedisCartStorage {
	return &RedisCartStorage{client: client}
}

// Load reads the persisted cart under key. A missing key yields (nil, nil):
// no cart is not an error.
func (r *RedisCartStorage) Load(ctx context.Context, key string) ([]cartdomain.Item, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []cartdomain.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return items, nil
}

// Save replaces the persisted cart under key with the given snapshot
func (r *RedisCartStorage) Save(ctx context.Context, key string, items []cartdomain.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Clear deletes the persisted cart under key; an absent key is a no-op
func (r *RedisCartStorage) Clear(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
