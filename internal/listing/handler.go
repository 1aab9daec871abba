package listing

import (
	"errors"
	"net/http"

	"material_market_backend/internal/common"
	"material_market_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const imageFormField = "image"

// Handler struct holds dependencies for listing handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
	cfg     *config.Config
}

// NewHandler creates a new listing handler.
func NewHandler(service Service, logger *zap.Logger, cfg *config.Config) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("ListingHandler"),
		cfg:     cfg,
	}
}

// RegisterRoutes sets up the routes for listing operations and reference data.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	listingGroup := router.Group("/listings")
	{
		listingGroup.GET("", h.searchListings)
		listingGroup.POST("", h.createListing)
		listingGroup.POST("/images", h.uploadImage)
		listingGroup.GET("/:id", h.getListingByID)
		listingGroup.PUT("/:id", h.replaceListing)
	}
	router.GET("/categories", h.getCategories)
	router.GET("/locations", h.getLocations)
}

func (h *Handler) bindListingRequest(c *gin.Context) (CreateListingRequest, bool) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LoggerFromContext(c, h.logger).Warn("Invalid listing payload", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return req, false
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request body: "+err.Error()))
		return req, false
	}
	return req, true
}

func (h *Handler) createListing(c *gin.Context) {
	req, ok := h.bindListingRequest(c)
	if !ok {
		return
	}
	listing, err := h.service.CreateListing(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Listing created successfully.", listing)
}

func (h *Handler) replaceListing(c *gin.Context) {
	req, ok := h.bindListingRequest(c)
	if !ok {
		return
	}
	listing, err := h.service.ReplaceListing(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing replaced successfully.", listing)
}

func (h *Handler) getListingByID(c *gin.Context) {
	listing, err := h.service.GetListingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing retrieved successfully.", listing)
}

func (h *Handler) searchListings(c *gin.Context) {
	var query SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid query parameters: "+err.Error()))
		return
	}
	page, pageSize := common.GetPaginationParams(c)

	listings, err := h.service.SearchListings(c.Request.Context(), query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	pageItems, pagination := common.Paginate(listings, page, pageSize)
	common.RespondPaginated(c, "Listings retrieved successfully.", pageItems, pagination)
}

func (h *Handler) uploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxImageBytes()+(1<<20))
	fileHeader, err := c.FormFile(imageFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			common.RespondWithError(c, common.ErrPayloadTooLarge)
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("An image file is required in the 'image' field."))
		return
	}
	if fileHeader.Size > h.cfg.MaxImageBytes() {
		common.RespondWithError(c, common.ErrPayloadTooLarge)
		return
	}

	ref, err := h.service.UploadImage(c.Request.Context(), fileHeader)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Image uploaded successfully.", ImageUploadResponse{Image: ref})
}

func (h *Handler) getCategories(c *gin.Context) {
	common.RespondOK(c, "", Categories())
}

func (h *Handler) getLocations(c *gin.Context) {
	common.RespondOK(c, "", Locations())
}
