package logistics_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"material_market_backend/internal/logistics"
	"material_market_backend/internal/platform/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandler_ListRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := logistics.NewMemoryRepository()
	require.NoError(t, logistics.SeedDemoData(context.Background(), repo, zap.NewNop()))
	service := logistics.NewService(repo, nil, metrics.NewNop(), zap.NewNop())

	router := gin.New()
	logistics.NewHandler(service, zap.NewNop()).RegisterRoutes(router.Group("/api/v1"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logistics-requests?page_size=2", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data       []logistics.Request `json:"data"`
		Pagination struct {
			TotalItems int64 `json:"total_items"`
			HasNext    bool  `json:"has_next"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "log5", resp.Data[0].ID)
	assert.Equal(t, int64(5), resp.Pagination.TotalItems)
	assert.True(t, resp.Pagination.HasNext)
}

func TestHandler_NoCreateRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := logistics.NewService(logistics.NewMemoryRepository(), nil, metrics.NewNop(), zap.NewNop())
	router := gin.New()
	logistics.NewHandler(service, zap.NewNop()).RegisterRoutes(router.Group("/api/v1"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/logistics-requests", nil))
	assert.NotEqual(t, http.StatusCreated, w.Code)
}
