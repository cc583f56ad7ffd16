package history

import (
	"context"

	"github.com/google/uuid"
	"github.com/meatshop/backend/internal/domain/order"
	"go.uber.org/zap"
)

// DefaultCap is the number of history entries kept per user
const DefaultCap = 10

// Retention appends a summary of each placed order to the user's history and
// evicts the oldest entries once the collection exceeds the cap. The cap is
// enforced synchronously after every write, never on a timer, so a read that
// follows a record from the same process never observes an over-cap
// collection.
type Retention struct {
	repo   order.HistoryRepository
	cap    int
	logger *zap.Logger
}

// NewRetention creates a retention service with the given cap; a cap of zero
// or less falls back to DefaultCap.
func NewRetention(repo order.HistoryRepository, cap int, logger *zap.Logger) *Retention {
	if cap <= 0 {
		cap = DefaultCap
	}
	return &Retention{
		repo:   repo,
		cap:    cap,
		logger: logger,
	}
}

// Record appends a reduced summary of the order to the user's history and
// then enforces the retention cap. The entry gets a generated order id.
func (r *Retention) Record(ctx context.Context, userID string, o *order.Order) (*order.HistoryEntry, error) {
	orderID := o.ID
	if orderID == "" {
		orderID = uuid.NewString()
	}
	entry := order.NewHistoryEntry(orderID, userID, o)
	if err := r.repo.Insert(ctx, &entry); err != nil {
		return nil, err
	}

	r.EnforceCap(ctx, userID)
	return &entry, nil
}

// EnforceCap deletes the oldest entries beyond the cap, leaving the most
// recent ones. Eviction failures are logged only: the order behind the entry
// already succeeded, so a lagging cleanup must not look like a failed order.
func (r *Retention) EnforceCap(ctx context.Context, userID string) {
	entries, err := r.repo.FindByUserOldestFirst(ctx, userID)
	if err != nil {
		r.logger.Warn("Failed to read order history for cap enforcement",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return
	}
	excess := len(entries) - r.cap
	if excess <= 0 {
		return
	}

	for _, entry := range entries[:excess] {
		if err := r.repo.DeleteByOrderID(ctx, userID, entry.OrderID); err != nil {
			r.logger.Warn("Failed to evict order history entry",
				zap.String("user_id", userID),
				zap.String("order_id", entry.OrderID),
				zap.Error(err),
			)
		}
	}
}

// List returns the user's history entries, oldest first
func (r *Retention) List(ctx context.Context, userID string) ([]order.HistoryEntry, error) {
	if userID == "" {
		return []order.HistoryEntry{}, nil
	}
	entries, err := r.repo.FindByUserOldestFirst(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []order.HistoryEntry{}
	}
	return entries, nil
}
