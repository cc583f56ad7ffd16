package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	cartapp "github.com/meatshop/backend/internal/application/cart"
	cartdomain "github.com/meatshop/backend/internal/domain/cart"
	"github.com/meatshop/backend/internal/interfaces/http/dto"
)

// CartHandler exposes the cart operations. The cart is session-scoped: the
// store is resolved per caller from the X-User-ID header, with a shared guest
// session for anonymous callers.
type CartHandler struct {
	BaseHandler
	carts *cartapp.Manager
}

// NewCartHandler creates a cart handler
func NewCartHandler(carts *cartapp.Manager) *CartHandler {
	return &CartHandler{carts: carts}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.DELETE("", h.Clear)
		cart.POST("/items", h.AddItem)
		cart.PUT("/items/:id", h.UpdateQuantity)
		cart.DELETE("/items/:id", h.RemoveItem)
	}
}

// WeightPayload mirrors the weight block of a cart item on the wire
type WeightPayload struct {
	Value float64 `json:"value" binding:"required,gt=0"`
	Unit  string  `json:"unit" binding:"required"`
}

// AddItemRequest is the add-to-cart payload
type AddItemRequest struct {
	ID       string         `json:"id" binding:"required"`
	Name     string         `json:"name" binding:"required"`
	Quantity int            `json:"quantity" binding:"required,min=1"`
	Weight   *WeightPayload `json:"weight"`
	ImageURL string         `json:"imageUrl"`
}

// UpdateQuantityRequest is the change-quantity payload. Zero and negative
// values are accepted; they remove the item.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartView is the cart response body
type CartView struct {
	Items      []cartdomain.Item `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice string            `json:"totalPrice"`
}

// cartIdentity resolves the cart session key for the caller
func cartIdentity(c *gin.Context) string {
	if uid := getUserID(c); uid != "" {
		return uid
	}
	return "guest"
}

func (h *CartHandler) store(c *gin.Context) *cartapp.Store {
	return h.carts.StoreFor(c.Request.Context(), cartIdentity(c))
}

func (h *CartHandler) view(s *cartapp.Store) CartView {
	return CartView{
		Items:      s.Items(),
		TotalItems: s.TotalItems(),
		TotalPrice: s.TotalPrice(),
	}
}

// Get returns the caller's cart with totals
func (h *CartHandler) Get(c *gin.Context) {
	h.Success(c, h.view(h.store(c)))
}

// AddItem adds an item, merging quantities for a repeated product id
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	item := cartdomain.Item{
		ID:       req.ID,
		Name:     req.Name,
		Quantity: req.Quantity,
		ImageURL: req.ImageURL,
	}
	if req.Weight != nil {
		item.Weight = &cartdomain.Weight{Value: req.Weight.Value, Unit: req.Weight.Unit}
	}

	s := h.store(c)
	s.AddItem(item)
	h.Success(c, h.view(s))
}

// UpdateQuantity replaces an item's quantity; non-positive removes it
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	s := h.store(c)
	s.UpdateQuantity(c.Param("id"), *req.Quantity)
	h.Success(c, h.view(s))
}

// RemoveItem deletes an item; an absent id is a no-op
func (h *CartHandler) RemoveItem(c *gin.Context) {
	s := h.store(c)
	s.RemoveItem(c.Param("id"))
	h.Success(c, h.view(s))
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	s := h.store(c)
	s.Clear()
	h.Success(c, h.view(s))
}
