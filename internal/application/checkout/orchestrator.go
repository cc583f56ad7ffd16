package checkout

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	cartapp "github.com/meatshop/backend/internal/application/cart"
	"github.com/meatshop/backend/internal/application/history"
	addrdomain "github.com/meatshop/backend/internal/domain/address"
	cartdomain "github.com/meatshop/backend/internal/domain/cart"
	"github.com/meatshop/backend/internal/domain/order"
	"github.com/meatshop/backend/internal/domain/pricing"
	"github.com/meatshop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// emailShape is the basic local@domain check the checkout form applies;
// deliverability is not this subsystem's problem.
var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// Contact is the shopper's contact block entered during checkout
type Contact struct {
	Name   string
	Email  string
	Phone  string
	UserID string
}

// Notifier dispatches the order-placed notification. It is fire-and-forget
// from the orchestrator's perspective: delivery outcome never blocks or rolls
// back an order.
type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, o *order.Order) error
}

// Result is the outcome of a checkout attempt
type Result struct {
	Status Status
	Order  *order.Order
}

// Orchestrator drives a checkout attempt: it validates contact and address
// selection, assembles an immutable Order from the current cart, persists it,
// then triggers the best-effort side effects (history, notification) and
// clears the cart.
type Orchestrator struct {
	orders    order.Repository
	retention *history.Retention
	notifier  Notifier
	engine    *pricing.Engine
	logger    *zap.Logger

	wg sync.WaitGroup
}

// NewOrchestrator creates a checkout orchestrator
func NewOrchestrator(orders order.Repository, retention *history.Retention, notifier Notifier, engine *pricing.Engine, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		orders:    orders,
		retention: retention,
		notifier:  notifier,
		engine:    engine,
		logger:    logger,
	}
}

// ValidateContact checks the contact block and returns a field-keyed error
// map; an empty map means the contact is complete.
func ValidateContact(c Contact) map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(c.Name) == "" {
		fields["name"] = "Name is required"
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		fields["email"] = "Email is required"
	} else if !emailShape.MatchString(email) {
		fields["email"] = "Email address is not valid"
	}
	if strings.TrimSpace(c.Phone) == "" {
		fields["phone"] = "Phone number is required"
	}
	return fields
}

// Submit runs one checkout attempt against the given cart.
//
// Validation failures hold the attempt in its collecting state and return a
// ValidationError. An empty cart fails before any persistence call. A
// persistence failure leaves the cart untouched so the shopper can retry;
// retrying creates a brand-new order record, there is no deduplication key.
// Once the order write succeeds nothing can fail the attempt any more:
// history bookkeeping and notification are best-effort.
func (o *Orchestrator) Submit(ctx context.Context, store *cartapp.Store, contact Contact, addr *addrdomain.Address, message string) (*Result, error) {
	result := &Result{Status: StatusCollectingContact}

	if fields := ValidateContact(contact); len(fields) > 0 {
		return result, shared.NewValidationError(fields)
	}
	result.Status = StatusSelectingAddress
	if addr == nil {
		return result, shared.NewValidationError(map[string]string{
			"address": "A delivery address must be selected",
		})
	}
	result.Status = StatusReadyToSubmit

	items := store.Items()
	if len(items) == 0 {
		return result, shared.ErrEmptyCart
	}

	result.Status = StatusSubmitting
	ord := o.buildOrder(contact, *addr, message, items)

	id, err := o.orders.Insert(ctx, ord)
	if err != nil {
		result.Status = StatusFailed
		o.logger.Error("Order submission failed, cart preserved for retry",
			zap.String("user_id", contact.UserID),
			zap.Error(err),
		)
		return result, shared.ErrPersistenceFailure
	}
	ord.ID = id

	// The order is committed. Everything below is bookkeeping and must not
	// surface as a checkout failure: a retry here would double-order.
	if contact.UserID != "" {
		if _, err := o.retention.Record(ctx, contact.UserID, ord); err != nil {
			o.logger.Warn("Order placed but history bookkeeping lagged",
				zap.String("order_id", ord.ID),
				zap.String("user_id", contact.UserID),
				zap.Error(err),
			)
		}
	}
	o.dispatchNotification(ord)

	store.Clear()
	result.Status = StatusSucceeded
	result.Order = ord

	o.logger.Info("Order placed",
		zap.String("order_id", ord.ID),
		zap.String("user_id", contact.UserID),
		zap.String("total", ord.TotalAmount),
		zap.Int("items", len(ord.Items)),
	)
	return result, nil
}

// buildOrder freezes the current cart into an immutable order snapshot. The
// address is copied by value so later edits to the saved address cannot
// change where this order ships.
func (o *Orchestrator) buildOrder(contact Contact, addr addrdomain.Address, message string, items []cartdomain.Item) *order.Order {
	orderItems := make([]order.Item, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, order.Item{
			ID:       it.ID,
			Name:     it.Name,
			Price:    pricing.FormatAmount(o.engine.UnitPrice(it.Weight)),
			Quantity: it.Quantity,
			ImageURL: it.ImageURL,
			Weight:   it.Weight,
		})
	}

	return &order.Order{
		Customer: order.Customer{
			Name:   contact.Name,
			Email:  contact.Email,
			Phone:  contact.Phone,
			UserID: contact.UserID,
		},
		Address:     addr,
		Items:       orderItems,
		Message:     message,
		TotalAmount: o.engine.CartTotalString(items),
		CreatedAt:   time.Now().UTC(),
	}
}

// dispatchNotification fires the order-placed notification without awaiting
// it; failures are logged and never propagate.
func (o *Orchestrator) dispatchNotification(ord *order.Order) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		if err := o.notifier.NotifyOrderPlaced(context.Background(), ord); err != nil {
			o.logger.Warn("Order notification dispatch failed",
				zap.String("order_id", ord.ID),
				zap.Error(err),
			)
		}
	}()
}

// Close waits for in-flight notification dispatches to finish
func (o *Orchestrator) Close() {
	o.wg.Wait()
}
