package cart

import (
	"context"
	"sync"

	cartdomain "github.com/meatshop/backend/internal/domain/cart"
	"github.com/meatshop/backend/internal/domain/pricing"
	"go.uber.org/zap"
)

// Store owns the in-progress cart for one user session. In-memory state is
// the source of truth: every mutation applies synchronously, then a snapshot
// is handed to a background worker that writes it to local durable storage.
// Storage failures are logged and never roll back the in-memory change, so
// the cart is allowed to run ahead of durable storage.
type Store struct {
	key     string
	storage cartdomain.Storage
	engine  *pricing.Engine
	logger  *zap.Logger

	mu      sync.Mutex
	cart    *cartdomain.Cart
	loaded  bool
	pending *snapshot

	signal chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup
}

// snapshot is the unit of work handed to the persistence worker. The worker
// always takes the latest snapshot, so writes land in mutation order and the
// persisted state converges to the latest in-memory state.
type snapshot struct {
	items []cartdomain.Item
	clear bool
}

// NewStore creates a cart store bound to one persistence key and attempts to
// restore a previously persisted cart. A missing or unreadable cart starts
// empty; a load failure is never fatal.
func NewStore(ctx context.Context, key string, storage cartdomain.Storage, engine *pricing.Engine, logger *zap.Logger) *Store {
	s := &Store{
		key:     key,
		storage: storage,
		engine:  engine,
		logger:  logger,
		cart:    cartdomain.New(),
		signal:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	items, err := storage.Load(ctx, key)
	if err != nil {
		logger.Warn("Failed to load persisted cart, starting empty",
			zap.String("key", key),
			zap.Error(err),
		)
	} else if items != nil {
		s.cart = cartdomain.Restore(items)
	}
	s.loaded = true

	s.wg.Add(1)
	go s.persistLoop()

	return s
}

// AddItem adds an item to the cart, merging quantities for a repeated ID,
// and schedules a best-effort persistence write.
func (s *Store) AddItem(item cartdomain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(item)
	s.schedulePersist()
}

// RemoveItem deletes the matching entry; absent IDs are a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(id)
	s.schedulePersist()
}

// UpdateQuantity replaces the stored quantity; a non-positive quantity
// removes the item.
func (s *Store) UpdateQuantity(id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(id, quantity)
	s.schedulePersist()
}

// Clear empties the in-memory cart synchronously before the storage clear is
// issued, so dependent reads see emptiness immediately even if the durable
// clear never completes.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.pending = &snapshot{clear: true}
	s.wake()
}

// Items returns the current line items in insertion order
func (s *Store) Items() []cartdomain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

// TotalItems returns the sum of all quantities
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalItems()
}

// IsEmpty returns true if the cart holds no items
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.IsEmpty()
}

// TotalPrice returns the formatted cart total from the price engine
func (s *Store) TotalPrice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.CartTotalString(s.cart.Items())
}

// Close stops the persistence worker after flushing any pending write
func (s *Store) Close() {
	close(s.done)
	s.wg.Wait()
}

// schedulePersist records the latest cart state for the worker. Caller must
// hold s.mu.
func (s *Store) schedulePersist() {
	s.pending = &snapshot{items: s.cart.Items()}
	s.wake()
}

func (s *Store) wake() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *Store) persistLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.signal:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

// flush writes the latest pending snapshot, if any. Mutations that arrive
// while a write is in flight coalesce into the next snapshot.
func (s *Store) flush() {
	s.mu.Lock()
	snap := s.pending
	s.pending = nil
	s.mu.Unlock()
	if snap == nil {
		return
	}

	ctx := context.Background()
	var err error
	if snap.clear {
		err = s.storage.Clear(ctx, s.key)
	} else {
		err = s.storage.Save(ctx, s.key, snap.items)
	}
	if err != nil {
		s.logger.Warn("Best-effort cart persistence failed",
			zap.String("key", s.key),
			zap.Bool("clear", snap.clear),
			zap.Error(err),
		)
	}
}
