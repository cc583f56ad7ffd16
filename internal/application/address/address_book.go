package address

import (
	"context"

	addrdomain "github.com/meatshop/backend/internal/domain/address"
	"github.com/meatshop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Book manages the saved delivery addresses of a user against the remote
// document store. All operations are scoped by user; for a given user at most
// one address carries the default flag.
type Book struct {
	repo   addrdomain.Repository
	logger *zap.Logger
}

// NewBook creates a new address book service
func NewBook(repo addrdomain.Repository, logger *zap.Logger) *Book {
	return &Book{
		repo:   repo,
		logger: logger,
	}
}

// List returns the user's saved addresses. A blank user identity yields an
// empty list, not an error: a signed-out shopper simply has no addresses.
func (b *Book) List(ctx context.Context, userID string) ([]addrdomain.Address, error) {
	if userID == "" {
		return []addrdomain.Address{}, nil
	}
	addrs, err := b.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if addrs == nil {
		addrs = []addrdomain.Address{}
	}
	return addrs, nil
}

// Create validates and stores a new address. The first address a user ever
// saves becomes the default automatically.
func (b *Book) Create(ctx context.Context, userID string, fields addrdomain.Fields) (*addrdomain.Address, error) {
	if userID == "" {
		return nil, shared.ErrInvalidReference
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	count, err := b.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	addr := &addrdomain.Address{UserID: userID}
	addr.Apply(fields)
	addr.IsDefault = count == 0

	id, err := b.repo.Insert(ctx, addr)
	if err != nil {
		return nil, err
	}
	addr.ID = id

	b.logger.Info("Address created",
		zap.String("user_id", userID),
		zap.String("address_id", id),
		zap.Bool("default", addr.IsDefault),
	)
	return addr, nil
}

// Update replaces the editable fields of the caller's address. The default
// flag is only altered when the request explicitly includes it.
func (b *Book) Update(ctx context.Context, userID, id string, fields addrdomain.Fields) (*addrdomain.Address, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	addr, err := b.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	addr.Apply(fields)

	if err := b.repo.Update(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

// Get returns a single address by id. An address owned by another user reads
// as not found, so address ids leak no existence information across users.
func (b *Book) Get(ctx context.Context, userID, id string) (*addrdomain.Address, error) {
	if id == "" {
		return nil, shared.ErrInvalidReference
	}
	addr, err := b.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if addr.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return addr, nil
}

// Remove deletes the caller's address. Deletion requires a concrete target: a
// blank id fails with InvalidReference rather than silently doing nothing, so
// a malformed reference is distinguishable from "nothing to delete".
func (b *Book) Remove(ctx context.Context, userID, id string) error {
	if _, err := b.Get(ctx, userID, id); err != nil {
		return err
	}
	return b.repo.Delete(ctx, id)
}

// SetDefault makes the target address the caller's single default. The
// transition is two sequential updates, not a transaction: every other
// default is cleared first, then the target is flagged. A crash between the
// steps can briefly leave zero or two defaults; the next SetDefault or page
// load self-heals.
func (b *Book) SetDefault(ctx context.Context, userID, id string) error {
	if _, err := b.Get(ctx, userID, id); err != nil {
		return err
	}

	current, err := b.repo.FindDefaultByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, a := range current {
		if a.ID == id {
			continue
		}
		if err := b.repo.SetDefaultFlag(ctx, a.ID, false); err != nil {
			return err
		}
	}

	return b.repo.SetDefaultFlag(ctx, id, true)
}
