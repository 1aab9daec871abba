package favorite

import (
	"material_market_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for favorites handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new favorites handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("FavoriteHandler"),
	}
}

// RegisterRoutes sets up the routes for favorites.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	favGroup := router.Group("/favorites")
	{
		favGroup.GET("", h.getFavoritedListings)
		favGroup.GET("/:id", h.getFavoriteStatus)
		favGroup.POST("/:id/toggle", h.toggleFavorite)
	}
}

func (h *Handler) getFavoritedListings(c *gin.Context) {
	listings, err := h.service.FavoritedListings(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Favorited listings retrieved successfully.", listings)
}

func (h *Handler) getFavoriteStatus(c *gin.Context) {
	status, err := h.service.IsFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", status)
}

func (h *Handler) toggleFavorite(c *gin.Context) {
	status, err := h.service.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Favorite toggled.", status)
}
