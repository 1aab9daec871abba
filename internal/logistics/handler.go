package logistics

import (
	"material_market_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for logistics handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new logistics handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("LogisticsHandler"),
	}
}

// RegisterRoutes exposes the read-only request board. Requests are only
// created through the purchase flow.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/logistics-requests", h.listRequests)
}

func (h *Handler) listRequests(c *gin.Context) {
	requests, err := h.service.ListRequests(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	page, pageSize := common.GetPaginationParams(c)
	pageItems, pagination := common.Paginate(requests, page, pageSize)
	common.RespondPaginated(c, "Logistics requests retrieved successfully.", pageItems, pagination)
}
