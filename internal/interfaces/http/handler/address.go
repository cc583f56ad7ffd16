package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	addrapp "github.com/meatshop/backend/internal/application/address"
	addrdomain "github.com/meatshop/backend/internal/domain/address"
	"github.com/meatshop/backend/internal/interfaces/http/dto"
)

// AddressHandler exposes the saved-address operations
type AddressHandler struct {
	BaseHandler
	book *addrapp.Book
}

// NewAddressHandler creates an address handler
func NewAddressHandler(book *addrapp.Book) *AddressHandler {
	return &AddressHandler{book: book}
}

// RegisterRoutes registers address routes
func (h *AddressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	addresses := rg.Group("/addresses")
	{
		addresses.GET("", h.List)
		addresses.POST("", h.Create)
		addresses.PUT("/:id", h.Update)
		addresses.DELETE("/:id", h.Remove)
		addresses.POST("/:id/default", h.SetDefault)
	}
}

// AddressRequest is the create/update payload. Field-level requirements are
// checked by the domain so that the response carries the full field error
// map, not just the first binding failure.
type AddressRequest struct {
	FullName      string `json:"fullName"`
	StreetAddress string `json:"streetAddress"`
	Apartment     string `json:"apartment"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	PhoneNumber   string `json:"phoneNumber"`
	IsDefault     *bool  `json:"isDefault"`
}

func (r AddressRequest) fields() addrdomain.Fields {
	return addrdomain.Fields{
		FullName:      r.FullName,
		StreetAddress: r.StreetAddress,
		Apartment:     r.Apartment,
		City:          r.City,
		State:         r.State,
		PostalCode:    r.PostalCode,
		Country:       r.Country,
		PhoneNumber:   r.PhoneNumber,
		IsDefault:     r.IsDefault,
	}
}

// List returns the caller's saved addresses
func (h *AddressHandler) List(c *gin.Context) {
	addrs, err := h.book.List(c.Request.Context(), getUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addrs)
}

// Create validates and stores a new address for the caller
func (h *AddressHandler) Create(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	addr, err := h.book.Create(c.Request.Context(), getUserID(c), req.fields())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, addr)
}

// Update replaces the editable fields of an existing address
func (h *AddressHandler) Update(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	addr, err := h.book.Update(c.Request.Context(), getUserID(c), c.Param("id"), req.fields())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addr)
}

// Remove deletes one of the caller's addresses
func (h *AddressHandler) Remove(c *gin.Context) {
	if err := h.book.Remove(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetDefault makes the target address the caller's single default
func (h *AddressHandler) SetDefault(c *gin.Context) {
	if err := h.book.SetDefault(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
