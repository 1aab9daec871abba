package favorite_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"material_market_backend/internal/favorite"
	"material_market_backend/internal/filestorage"
	"material_market_backend/internal/listing"
	"material_market_backend/internal/platform/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := listing.NewMemoryRepository()
	require.NoError(t, listing.SeedDemoData(context.Background(), repo, zap.NewNop()))
	listings := listing.NewService(repo, nil, filestorage.NewEmbeddedStore(), metrics.NewNop(), zap.NewNop())
	service := favorite.NewService(favorite.NewMemorySet(), listings, metrics.NewNop(), zap.NewNop())

	router := gin.New()
	favorite.NewHandler(service, zap.NewNop()).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func serve(router *gin.Engine, method, path string, out interface{}) int {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err == nil && out != nil {
		_ = json.Unmarshal(env.Data, out)
	}
	return w.Code
}

func TestHandler_ToggleAndList(t *testing.T) {
	router := setupRouter(t)

	var status favorite.Status
	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/api/v1/favorites/3/toggle", &status))
	assert.True(t, status.Favorite)
	assert.Equal(t, "3", status.ListingID)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/api/v1/favorites/7/toggle", nil))

	var listings []listing.Listing
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/favorites", &listings))
	require.Len(t, listings, 2)
	assert.Equal(t, "7", listings[0].ID)
	assert.Equal(t, "3", listings[1].ID)

	status = favorite.Status{}
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/favorites/3", &status))
	assert.True(t, status.Favorite)

	status = favorite.Status{}
	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/api/v1/favorites/3/toggle", &status))
	assert.False(t, status.Favorite)
}

func TestHandler_ToggleUnknownListing(t *testing.T) {
	router := setupRouter(t)

	var status favorite.Status
	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/api/v1/favorites/unknown/toggle", &status))
	assert.True(t, status.Favorite)

	var listings []listing.Listing
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/favorites", &listings))
	assert.Empty(t, listings)
}
