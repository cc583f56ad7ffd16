package cart

import (
	"github.com/meatshop/backend/internal/domain/shared"
)

// Weight is the declared physical weight of one unit of a catalog item.
// Items without a declared weight are priced as one kilogram equivalent,
// so absence is modelled as a nil pointer, not a zero value.
type Weight struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Item is one line item in a cart: a catalog entry plus its quantity.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Weight   *Weight `json:"weight,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// NewItem creates a cart item, validating the invariants a cart relies on
func NewItem(id, name string, quantity int, weight *Weight, imageURL string) (Item, error) {
	if id == "" {
		return Item{}, shared.NewDomainError("INVALID_INPUT", "Item ID cannot be empty")
	}
	if quantity < 1 {
		return Item{}, shared.NewDomainError("INVALID_INPUT", "Quantity must be at least 1")
	}
	return Item{
		ID:       id,
		Name:     name,
		Quantity: quantity,
		Weight:   weight,
		ImageURL: imageURL,
	}, nil
}

// Cart is the ordered collection of line items for one user session.
// It holds at most one Item per ID; all mutations preserve insertion order.
type Cart struct {
	items []Item
}

// New creates an empty cart
func New() *Cart {
	return &Cart{items: make([]Item, 0)}
}

// Restore rebuilds a cart from previously persisted items.
// Entries that violate cart invariants (duplicate IDs, non-positive
// quantities) are merged or dropped the same way live mutations would.
func Restore(items []Item) *Cart {
	c := New()
	for _, it := range items {
		if it.ID == "" || it.Quantity < 1 {
			continue
		}
		c.Add(it)
	}
	return c
}

// Add inserts an item. If an item with the same ID already exists, the
// incoming quantity is added to the existing entry and every other field of
// the existing entry is left untouched.
func (c *Cart) Add(item Item) {
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

// Remove deletes the item with the given ID. Removing an absent ID is a no-op.
func (c *Cart) Remove(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the stored quantity for the given ID.
// A quantity of zero or less removes the item instead of storing it.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.Remove(id)
		return
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear removes every item
func (c *Cart) Clear() {
	c.items = c.items[:0]
}

// Items returns a copy of the line items in insertion order
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems returns the sum of all quantities
func (c *Cart) TotalItems() int {
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// IsEmpty returns true if the cart holds no items
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Len returns the number of distinct line items
func (c *Cart) Len() int {
	return len(c.items)
}
