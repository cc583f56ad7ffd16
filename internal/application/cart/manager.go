package cart

import (
	"context"
	"sync"

	cartdomain "github.com/meatshop/backend/internal/domain/cart"
	"github.com/meatshop/backend/internal/domain/pricing"
	"go.uber.org/zap"
)

// Manager hands out the cart store for a session. Each user gets exactly one
// Store, created on first use and bound to its own persistence key; carts are
// never shared across sessions.
type Manager struct {
	storage cartdomain.Storage
	engine  *pricing.Engine
	logger  *zap.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager creates a cart store manager
func NewManager(storage cartdomain.Storage, engine *pricing.Engine, logger *zap.Logger) *Manager {
	return &Manager{
		storage: storage,
		engine:  engine,
		logger:  logger,
		stores:  make(map[string]*Store),
	}
}

// StoreFor returns the cart store for the given user, creating and restoring
// it on first access.
func (m *Manager) StoreFor(ctx context.Context, userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[userID]; ok {
		return s
	}
	s := NewStore(ctx, storageKey(userID), m.storage, m.engine, m.logger)
	m.stores[userID] = s
	return s
}

// Close disposes every active store, flushing pending writes
func (m *Manager) Close() {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, s := range m.stores {
		stores = append(stores, s)
	}
	m.stores = make(map[string]*Store)
	m.mu.Unlock()

	for _, s := range stores {
		s.Close()
	}
}

func storageKey(userID string) string {
	return "cart:" + userID
}
