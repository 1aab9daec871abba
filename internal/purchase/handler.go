package purchase

import (
	"bytes"
	"encoding/json"
	"errors"

	"material_market_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// StartPurchaseRequest opens a purchase for a listing.
type StartPurchaseRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
}

// priceInput accepts the offered price as a JSON string or number and
// keeps it unparsed.
type priceInput string

func (p *priceInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = priceInput(s)
		return nil
	}
	*p = priceInput(data)
	return nil
}

// SetLogisticsRequest carries the logistics step form. SelfManage
// defaults to true when omitted.
type SetLogisticsRequest struct {
	SelfManage   *bool      `json:"self_manage"`
	Destination  string     `json:"destination"`
	OfferedPrice priceInput `json:"offered_price"`
}

func (r SetLogisticsRequest) toInput() LogisticsInput {
	selfManage := true
	if r.SelfManage != nil {
		selfManage = *r.SelfManage
	}
	return LogisticsInput{
		SelfManage:   selfManage,
		Destination:  r.Destination,
		OfferedPrice: string(r.OfferedPrice),
	}
}

// Handler struct holds dependencies for purchase handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new purchase handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("PurchaseHandler"),
	}
}

// RegisterRoutes sets up the routes for the purchase workflow.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	purchaseGroup := router.Group("/purchases")
	{
		purchaseGroup.POST("", h.startPurchase)
		purchaseGroup.GET("/:id", h.getPurchase)
		purchaseGroup.DELETE("/:id", h.abandonPurchase)
		purchaseGroup.POST("/:id/proceed", h.proceed)
		purchaseGroup.PUT("/:id/logistics", h.setLogistics)
		purchaseGroup.POST("/:id/confirm-logistics", h.confirmLogistics)
		purchaseGroup.GET("/:id/summary", h.getSummary)
		purchaseGroup.POST("/:id/complete", h.complete)
	}
}

func (h *Handler) bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		common.LoggerFromContext(c, h.logger).Warn("Invalid purchase payload", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return false
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request body: "+err.Error()))
		return false
	}
	return true
}

func (h *Handler) startPurchase(c *gin.Context) {
	var req StartPurchaseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	session, err := h.service.Start(c.Request.Context(), req.ListingID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Purchase started.", session)
}

func (h *Handler) getPurchase(c *gin.Context) {
	session, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", session)
}

func (h *Handler) abandonPurchase(c *gin.Context) {
	if err := h.service.Abandon(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) proceed(c *gin.Context) {
	session, err := h.service.Proceed(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", session)
}

func (h *Handler) setLogistics(c *gin.Context) {
	var req SetLogisticsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	session, err := h.service.SetLogistics(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", session)
}

func (h *Handler) confirmLogistics(c *gin.Context) {
	session, err := h.service.ConfirmLogistics(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", session)
}

func (h *Handler) getSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", summary)
}

func (h *Handler) complete(c *gin.Context) {
	outcome, err := h.service.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, outcome.Notification.Title, outcome)
}
