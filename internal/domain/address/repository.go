package address

import "context"

// Repository is the port to the remote document store's addresses collection.
// Every query is scoped to one user; the store assigns IDs on insert.
type Repository interface {
	FindByUser(ctx context.Context, userID string) ([]Address, error)
	FindByID(ctx context.Context, id string) (*Address, error)
	Insert(ctx context.Context, addr *Address) (string, error)
	Update(ctx context.Context, addr *Address) error
	Delete(ctx context.Context, id string) error
	// CountByUser supports the first-address-becomes-default rule
	CountByUser(ctx context.Context, userID string) (int64, error)
	// FindDefaultByUser returns the addresses currently flagged default for
	// the user. More than one entry means a prior SetDefault was interrupted;
	// callers clear the stragglers.
	FindDefaultByUser(ctx context.Context, userID string) ([]Address, error)
	// SetDefaultFlag updates only the is_default field of one address
	SetDefaultFlag(ctx context.Context, id string, isDefault bool) error
}
