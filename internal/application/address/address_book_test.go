package address

import (
	"context"
	"errors"
	"testing"

	addrdomain "github.com/meatshop/backend/internal/domain/address"
	"github.com/meatshop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockAddressRepository is a mock implementation of address.Repository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByUser(ctx context.Context, userID string) ([]addrdomain.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]addrdomain.Address), args.Error(1)
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id string) (*addrdomain.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*addrdomain.Address), args.Error(1)
}

func (m *MockAddressRepository) Insert(ctx context.Context, addr *addrdomain.Address) (string, error) {
	args := m.Called(ctx, addr)
	return args.String(0), args.Error(1)
}

func (m *MockAddressRepository) Update(ctx context.Context, addr *addrdomain.Address) error {
	args := m.Called(ctx, addr)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAddressRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAddressRepository) FindDefaultByUser(ctx context.Context, userID string) ([]addrdomain.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]addrdomain.Address), args.Error(1)
}

func (m *MockAddressRepository) SetDefaultFlag(ctx context.Context, id string, isDefault bool) error {
	args := m.Called(ctx, id, isDefault)
	return args.Error(0)
}

func validFields() addrdomain.Fields {
	return addrdomain.Fields{
		FullName:      "Jordan Baker",
		StreetAddress: "12 Market Street",
		City:          "Springfield",
		State:         "IL",
		PostalCode:    "62701",
		Country:       "USA",
		PhoneNumber:   "+1-555-0101",
	}
}

func TestBook_List_EmptyUserID(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	book := NewBook(mockRepo, zap.NewNop())

	addrs, err := book.List(context.Background(), "")

	assert.NoError(t, err)
	assert.Empty(t, addrs)
	mockRepo.AssertNotCalled(t, "FindByUser")
}

func TestBook_List_NilResultBecomesEmptySlice(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	book := NewBook(mockRepo, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("FindByUser", ctx, "user-1").Return([]addrdomain.Address(nil), nil)

	addrs, err := book.List(ctx, "user-1")

	assert.NoError(t, err)
	assert.NotNil(t, addrs)
	assert.Empty(t, addrs)
}

func TestBook_Create_FirstAddressBecomesDefault(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	book := NewBook(mockRepo, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("CountByUser", ctx, "user-1").Return(int64(0), nil)
	mockRepo.On("Insert", ctx, mock.AnythingOfType("*address.Address")).Return("addr-1", nil)

	addr, err := book.Create(ctx, "user-1", validFields())

	require.NoError(t, err)
	assert.Equal(t, "addr-1", addr.ID)
	assert.True(t, addr.IsDefault)
	mockRepo.AssertExpectations(t)
}

func TestBook_Create_SubsequentAddressNotDefault(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	book := NewBook(mockRepo, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("CountByUser", ctx, "user-1").Return(int64(2), nil)
	mockRepo.On("Insert", ctx, mock.AnythingOfType("*address.Address")).Return("addr-3", nil)

	addr, err := book.Create(ctx, "user-1", validFields())

	require.NoError(t, err)
	assert.False(t, addr.IsDefault)
}

func TestBook_Create_ValidationFailure(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	book := NewBook(mockRepo, zap.NewNop())

	fields := validFields()
	fields.FullName = ""
	fields.PhoneNumber = "  "

	_, err := book.Create(context.Background(), "user-1", fields)

	var vErr *shared.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "fullName")
	assert.Contains(t, vErr.Fields, "phoneNumber")
	mockRepo.AssertNotCalled(t, "Insert")
}

func TestBook_Update_PreservesDefaultFlagUnlessProvided(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	book := NewBook(mockRepo, zap.NewNop())
	ctx := context.Background()

	existing := &addrdomain.Address{ID: "addr-1", UserID: "user-1", IsDefault: true}
	mockRepo.On("FindByID", ctx, "addr-1").Return(existing, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*address.Address")).Return(nil)

	addr, err := book.Update(ctx, "user-1", "addr-1", validFields())

	require.NoError(t, err)
	assert.True(t, addr.IsDefault, "default flag must survive an update that does not carry it")
	assert.Equal(t, "Jordan Baker", addr.FullName)
}

func TestBook_Update_ExplicitDefaultFlag(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	book := NewBook(mockRepo, zap.NewNop())
	ctx := context.Background()

	existing := &addrdomain.Address{ID: "addr-1", UserID: "user-1", IsDefault: true}
	mockRepo.On("FindByID", ctx, "addr-1").Return(existing, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*address.Address")).Return(nil)

	fields := validFields()
	notDefault := false
	fields.IsDefault = &notDefault

	addr, err := book.Update(ctx, "user-1", "addr-1", fields)

	require.NoError(t, err)
	assert.False(t, addr.IsDefault)
}

func TestBook_Remove_BlankIDIsInvalidReference(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	book := NewBook(mockRepo, zap.NewNop())

	err := book.Remove(context.Background(), "user-1", "")

	assert.ErrorIs(t, err, shared.ErrInvalidReference)
	mockRepo.AssertNotCalled(t, "Delete")
}

func TestBook_Remove_DeletesTarget(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	book := NewBook(mockRepo, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("FindByID", ctx, "addr-1").Return(&addrdomain.Address{ID: "addr-1", UserID: "user-1"}, nil)
	mockRepo.On("Delete", ctx, "addr-1").Return(nil)

	assert.NoError(t, book.Remove(ctx, "user-1", "addr-1"))
	mockRepo.AssertExpectations(t)
}

func TestBook_ForeignAddressReadsAsNotFound(t *testing.T) {
	// Mutations against another user's address must fail as not found and
	// never reach the write side of the repository.
	mockRepo := new(MockAddressRepository)
	book := NewBook(mockRepo, zap.NewNop())
	ctx := context.Background()

	theirs := &addrdomain.Address{ID: "addr-1", UserID: "user-1"}
	mockRepo.On("FindByID", ctx, "addr-1").Return(theirs, nil)

	_, err := book.Get(ctx, "user-2", "addr-1")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = book.Update(ctx, "user-2", "addr-1", validFields())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = book.Remove(ctx, "user-2", "addr-1")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = book.SetDefault(ctx, "user-2", "addr-1")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	mockRepo.AssertNotCalled(t, "Update")
	mockRepo.AssertNotCalled(t, "Delete")
	mockRepo.AssertNotCalled(t, "SetDefaultFlag")
}

func TestBook_SetDefault_ClearsOthersThenFlagsTarget(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	book := NewBook(mockRepo, zap.NewNop())
	ctx := context.Background()

	target := &addrdomain.Address{ID: "addr-2", UserID: "user-1"}
	mockRepo.On("FindByID", ctx, "addr-2").Return(target, nil)
	mockRepo.On("FindDefaultByUser", ctx, "user-1").Return([]addrdomain.Address{
		{ID: "addr-1", UserID: "user-1", IsDefault: true},
	}, nil)
	mockRepo.On("SetDefaultFlag", ctx, "addr-1", false).Return(nil)
	mockRepo.On("SetDefaultFlag", ctx, "addr-2", true).Return(nil)

	err := book.SetDefault(ctx, "user-1", "addr-2")

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestBook_SetDefault_HealsDoubleDefault(t *testing.T) {
	// Two addresses flagged default (an interrupted earlier transition):
	// both stragglers are cleared before the target is flagged.
	mockRepo := new(MockAddressRepository)
	book := NewBook(mockRepo, zap.NewNop())
	ctx := context.Background()

	target := &addrdomain.Address{ID: "addr-3", UserID: "user-1"}
	mockRepo.On("FindByID", ctx, "addr-3").Return(target, nil)
	mockRepo.On("FindDefaultByUser", ctx, "user-1").Return([]addrdomain.Address{
		{ID: "addr-1", UserID: "user-1", IsDefault: true},
		{ID: "addr-2", UserID: "user-1", IsDefault: true},
	}, nil)
	mockRepo.On("SetDefaultFlag", ctx, "addr-1", false).Return(nil)
	mockRepo.On("SetDefaultFlag", ctx, "addr-2", false).Return(nil)
	mockRepo.On("SetDefaultFlag", ctx, "addr-3", true).Return(nil)

	err := book.SetDefault(ctx, "user-1", "addr-3")

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestBook_SetDefault_TargetAlreadyDefault(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	book := NewBook(mockRepo, zap.NewNop())
	ctx := context.Background()

	target := &addrdomain.Address{ID: "addr-1", UserID: "user-1", IsDefault: true}
	mockRepo.On("FindByID", ctx, "addr-1").Return(target, nil)
	mockRepo.On("FindDefaultByUser", ctx, "user-1").Return([]addrdomain.Address{*target}, nil)
	// The target itself is skipped during the clearing pass.
	mockRepo.On("SetDefaultFlag", ctx, "addr-1", true).Return(nil)

	err := book.SetDefault(ctx, "user-1", "addr-1")

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestBook_SetDefault_PersistenceFailureSurfaces(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	book := NewBook(mockRepo, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("FindByID", ctx, "addr-1").Return(nil, errors.New("connection reset"))

	err := book.SetDefault(ctx, "user-1", "addr-1")

	assert.Error(t, err)
}
