package order

import "context"

// Repository is the port to the orders collection. This subsystem only ever
// writes orders; reads happen elsewhere.
type Repository interface {
	Insert(ctx context.Context, o *Order) (string, error)
}

// HistoryRepository is the port to the per-user order history collection.
type HistoryRepository interface {
	Insert(ctx context.Context, entry *HistoryEntry) error
	// FindByUserOldestFirst returns the user's entries ordered by creation
	// time ascending, so eviction can walk from the oldest.
	FindByUserOldestFirst(ctx context.Context, userID string) ([]HistoryEntry, error)
	DeleteByOrderID(ctx context.Context, userID, orderID string) error
}
