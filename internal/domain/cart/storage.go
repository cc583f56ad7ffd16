package cart

import "context"

// Storage is the local durable store a cart is persisted to between process
// restarts. One storage key holds the serialized line items of one cart.
//
// Load returns (nil, nil) when nothing is stored under the key; a missing
// cart is not an error. Implementations live in infrastructure.
type Storage interface {
	Load(ctx context.Context, key string) ([]Item, error)
	Save(ctx context.Context, key string, items []Item) error
	Clear(ctx context.Context, key string) error
}
