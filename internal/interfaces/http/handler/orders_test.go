package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meatshop/backend/internal/application/history"
	"github.com/meatshop/backend/internal/domain/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupOrderRouter(t *testing.T) (*gin.Engine, *MockHistoryRepository) {
	t.Helper()
	historyRepo := new(MockHistoryRepository)
	retention := history.NewRetention(historyRepo, 10, zap.NewNop())

	router := gin.New()
	api := router.Group("/api/v1")
	NewOrderHandler(retention).RegisterRoutes(api)
	return router, historyRepo
}

func TestOrderHandler_History(t *testing.T) {
	router, repo := setupOrderRouter(t)
	repo.On("FindByUserOldestFirst", mock.Anything, "user-1").Return([]order.HistoryEntry{
		{OrderID: "order-1", UserID: "user-1", TotalAmount: "10.00", ItemCount: 2, CreatedAt: time.Now().UTC()},
	}, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/orders/history", "user-1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []order.HistoryEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "order-1", resp.Data[0].OrderID)
}

func TestOrderHandler_History_GuestGetsEmptyList(t *testing.T) {
	router, repo := setupOrderRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/orders/history", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []order.HistoryEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
	repo.AssertNotCalled(t, "FindByUserOldestFirst")
}
