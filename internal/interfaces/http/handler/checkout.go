package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	addrapp "github.com/meatshop/backend/internal/application/address"
	cartapp "github.com/meatshop/backend/internal/application/cart"
	"github.com/meatshop/backend/internal/application/checkout"
	addrdomain "github.com/meatshop/backend/internal/domain/address"
	"github.com/meatshop/backend/internal/interfaces/http/dto"
)

// CheckoutHandler drives order submission over HTTP
type CheckoutHandler struct {
	BaseHandler
	carts        *cartapp.Manager
	book         *addrapp.Book
	orchestrator *checkout.Orchestrator
}

// NewCheckoutHandler creates a checkout handler
func NewCheckoutHandler(carts *cartapp.Manager, book *addrapp.Book, orchestrator *checkout.Orchestrator) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, book: book, orchestrator: orchestrator}
}

// RegisterRoutes registers the checkout route
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.Submit)
}

// ContactPayload is the contact block of a checkout request
type ContactPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CheckoutRequest is the order submission payload. AddressID references one
// of the caller's saved addresses; contact fields are validated by the
// orchestrator so the response carries the full field error map.
type CheckoutRequest struct {
	Contact   ContactPayload `json:"contact"`
	AddressID string         `json:"addressId"`
	Message   string         `json:"message"`
}

// CheckoutResponse is the order submission result
type CheckoutResponse struct {
	Status  string      `json:"status"`
	OrderID string      `json:"orderId,omitempty"`
	Order   interface{} `json:"order,omitempty"`
}

// Submit runs one checkout attempt against the caller's cart
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	userID := getUserID(c)

	addr, err := h.resolveAddress(c, req.AddressID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	contact := checkout.Contact{
		Name:   req.Contact.Name,
		Email:  req.Contact.Email,
		Phone:  req.Contact.Phone,
		UserID: userID,
	}

	store := h.carts.StoreFor(ctx, cartIdentity(c))
	result, err := h.orchestrator.Submit(ctx, store, contact, addr, req.Message)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, CheckoutResponse{
		Status:  result.Status.String(),
		OrderID: result.Order.ID,
		Order:   result.Order,
	})
}

// resolveAddress loads the selected address, scoped to the caller. A missing
// selection is passed through as nil so the orchestrator can report it in its
// field error map; another user's address reads as not found rather than
// forbidden.
func (h *CheckoutHandler) resolveAddress(c *gin.Context, addressID, userID string) (*addrdomain.Address, error) {
	if addressID == "" {
		return nil, nil
	}
	return h.book.Get(c.Request.Context(), userID, addressID)
}
