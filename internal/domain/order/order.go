package order

import (
	"time"

	"github.com/meatshop/backend/internal/domain/address"
	"github.com/meatshop/backend/internal/domain/cart"
)

// Customer is the contact block captured at checkout. UserID is the opaque
// identifier of the signed-in user, empty for guest checkouts.
type Customer struct {
	Name   string `json:"name" bson:"name"`
	Email  string `json:"email" bson:"email"`
	Phone  string `json:"phone" bson:"phone"`
	UserID string `json:"userId,omitempty" bson:"user_id,omitempty"`
}

// Item is one line of a placed order. Price is the per-unit price in effect
// at order time, formatted with two fraction digits.
type Item struct {
	ID       string       `json:"id" bson:"id"`
	Name     string       `json:"name" bson:"name"`
	Price    string       `json:"price" bson:"price"`
	Quantity int          `json:"quantity" bson:"quantity"`
	ImageURL string       `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	Weight   *cart.Weight `json:"weight,omitempty" bson:"weight,omitempty"`
}

// Order is the snapshot assembled at checkout time. It is never mutated
// after creation: the delivery address is a copy of the selected saved
// address, so later edits or deletion of that address cannot change it.
type Order struct {
	ID          string          `json:"id" bson:"_id,omitempty"`
	Customer    Customer        `json:"customer" bson:"customer"`
	Address     address.Address `json:"address" bson:"address"`
	Items       []Item          `json:"items" bson:"items"`
	Message     string          `json:"message,omitempty" bson:"message,omitempty"`
	TotalAmount string          `json:"totalAmount" bson:"total_amount"`
	CreatedAt   time.Time       `json:"createdAt" bson:"created_at"`
}

// HistoryItem is the reduced line-item form kept in order history:
// no images, no weight.
type HistoryItem struct {
	Name     string `json:"name" bson:"name"`
	Quantity int    `json:"quantity" bson:"quantity"`
	Price    string `json:"price" bson:"price"`
}

// HistoryEntry is a compact per-user summary of a placed order. Created once,
// never updated, deleted only by the retention policy.
type HistoryEntry struct {
	OrderID     string        `json:"orderId" bson:"order_id"`
	UserID      string        `json:"userId" bson:"user_id"`
	CreatedAt   time.Time     `json:"createdAt" bson:"created_at"`
	TotalAmount string        `json:"totalAmount" bson:"total_amount"`
	ItemCount   int           `json:"itemCount" bson:"item_count"`
	Items       []HistoryItem `json:"items" bson:"items"`
}

// NewHistoryEntry reduces an order to its history form
func NewHistoryEntry(orderID, userID string, o *Order) HistoryEntry {
	items := make([]HistoryItem, 0, len(o.Items))
	count := 0
	for _, it := range o.Items {
		items = append(items, HistoryItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
		count += it.Quantity
	}
	return HistoryEntry{
		OrderID:     orderID,
		UserID:      userID,
		CreatedAt:   o.CreatedAt,
		TotalAmount: o.TotalAmount,
		ItemCount:   count,
		Items:       items,
	}
}
