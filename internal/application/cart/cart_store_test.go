package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	cartdomain "github.com/meatshop/backend/internal/domain/cart"
	"github.com/meatshop/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStorage is an in-memory cart.Storage with per-call failure switches
type fakeStorage struct {
	mu        sync.Mutex
	data      map[string][]cartdomain.Item
	loadErr   error
	saveErr   error
	saves     int
	clears    int
	blockSave chan struct{} // when set, Save/Clear block until closed
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{data: make(map[string][]cartdomain.Item)}
}

func (f *fakeStorage) Load(_ context.Context, key string) ([]cartdomain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.data[key], nil
}

func (f *fakeStorage) Save(_ context.Context, key string, items []cartdomain.Item) error {
	if f.blockSave != nil {
		<-f.blockSave
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[key] = items
	return nil
}

func (f *fakeStorage) Clear(_ context.Context, key string) error {
	if f.blockSave != nil {
		<-f.blockSave
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	delete(f.data, key)
	return nil
}

func (f *fakeStorage) stored(key string) []cartdomain.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key]
}

func testEngine() *pricing.Engine {
	return pricing.NewEngine(decimal.NewFromInt(10))
}

func testItem(t *testing.T, id string, quantity int) cartdomain.Item {
	item, err := cartdomain.NewItem(id, "Item "+id, quantity, nil, "")
	require.NoError(t, err)
	return item
}

func newTestStore(t *testing.T, storage cartdomain.Storage) *Store {
	s := NewStore(context.Background(), "cart:test-user", storage, testEngine(), zap.NewNop())
	t.Cleanup(s.Close)
	return s
}

func TestStore_AddItem_AccumulatesQuantities(t *testing.T) {
	s := newTestStore(t, newFakeStorage())

	s.AddItem(testItem(t, "x", 3))
	s.AddItem(testItem(t, "x", 2))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, s.TotalItems())
}

func TestStore_UpdateQuantity_NonPositiveRemoves(t *testing.T) {
	s := newTestStore(t, newFakeStorage())
	s.AddItem(testItem(t, "a", 2))
	s.AddItem(testItem(t, "b", 1))

	s.UpdateQuantity("a", 0)

	assert.Equal(t, 1, s.TotalItems())
	require.Len(t, s.Items(), 1)
	assert.Equal(t, "b", s.Items()[0].ID)
}

func TestStore_PersistsAfterMutation(t *testing.T) {
	storage := newFakeStorage()
	s := newTestStore(t, storage)

	s.AddItem(testItem(t, "a", 2))

	require.Eventually(t, func() bool {
		stored := storage.stored("cart:test-user")
		return len(stored) == 1 && stored[0].Quantity == 2
	}, time.Second, 5*time.Millisecond)
}

func TestStore_RestoresPersistedCart(t *testing.T) {
	storage := newFakeStorage()
	storage.data["cart:test-user"] = []cartdomain.Item{
		{ID: "a", Name: "A", Quantity: 2, Weight: &cartdomain.Weight{Value: 500, Unit: "g"}},
		{ID: "b", Name: "B", Quantity: 1},
	}

	s := newTestStore(t, storage)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	require.NotNil(t, items[0].Weight)
	assert.Equal(t, 500.0, items[0].Weight.Value)
	assert.Equal(t, 3, s.TotalItems())
}

func TestStore_LoadFailureStartsEmpty(t *testing.T) {
	storage := newFakeStorage()
	storage.loadErr = errors.New("storage unavailable")

	s := newTestStore(t, storage)

	assert.True(t, s.IsEmpty())
}

func TestStore_SaveFailureKeepsInMemoryState(t *testing.T) {
	storage := newFakeStorage()
	storage.saveErr = errors.New("disk full")
	s := newTestStore(t, storage)

	s.AddItem(testItem(t, "a", 2))

	// The write fails in the background; the in-memory cart stays ahead.
	require.Eventually(t, func() bool {
		storage.mu.Lock()
		defer storage.mu.Unlock()
		return storage.saves >= 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, s.TotalItems())
}

func TestStore_ClearIsSynchronousEvenWhenStorageHangs(t *testing.T) {
	storage := newFakeStorage()
	storage.blockSave = make(chan struct{}) // storage never resolves

	s := NewStore(context.Background(), "cart:test-user", storage, testEngine(), zap.NewNop())
	defer s.Close()
	defer close(storage.blockSave) // unblock the worker before Close waits on it
	s.AddItem(testItem(t, "a", 2))

	s.Clear()

	// Emptiness is observable immediately; the durable clear may never land.
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.TotalItems())
}

func TestStore_TotalPrice(t *testing.T) {
	s := newTestStore(t, newFakeStorage())
	item, err := cartdomain.NewItem("sausage-1", "Sausage", 2, &cartdomain.Weight{Value: 500, Unit: "g"}, "")
	require.NoError(t, err)

	s.AddItem(item)

	assert.Equal(t, "10.00", s.TotalPrice())
}

func TestStore_PersistedStateConvergesToLatestMutation(t *testing.T) {
	storage := newFakeStorage()
	s := newTestStore(t, storage)

	for i := 1; i <= 20; i++ {
		s.UpdateQuantity("a", i)
		s.AddItem(testItem(t, "a", 1))
	}
	s.UpdateQuantity("a", 7)

	require.Eventually(t, func() bool {
		stored := storage.stored("cart:test-user")
		return len(stored) == 1 && stored[0].Quantity == 7
	}, time.Second, 5*time.Millisecond)
}

func TestManager_OneStorePerUser(t *testing.T) {
	storage := newFakeStorage()
	m := NewManager(storage, testEngine(), zap.NewNop())
	defer m.Close()

	ctx := context.Background()
	a := m.StoreFor(ctx, "user-1")
	b := m.StoreFor(ctx, "user-1")
	c := m.StoreFor(ctx, "user-2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}
