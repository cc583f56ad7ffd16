package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/meatshop/backend/internal/application/history"
)

// OrderHandler exposes the order history read side
type OrderHandler struct {
	BaseHandler
	retention *history.Retention
}

// NewOrderHandler creates an order handler
func NewOrderHandler(retention *history.Retention) *OrderHandler {
	return &OrderHandler{retention: retention}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders/history", h.History)
}

// History returns the caller's capped order history, oldest first. A guest
// caller has no history and gets an empty list.
func (h *OrderHandler) History(c *gin.Context) {
	entries, err := h.retention.List(c.Request.Context(), getUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
