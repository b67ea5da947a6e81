package quotes

import (
	"errors"
	"net/http"

	"royalstay/internal/promos"
	"royalstay/internal/rooms"
	"royalstay/internal/shared/middleware"
	"royalstay/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateQuote handles POST /api/v1/quotes
func (c *Controller) CreateQuote(ctx *gin.Context) {
	var req QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	quote, err := c.service.CreateQuote(ctx.Request.Context(), req, middleware.UserID(ctx), ctx.GetHeader("X-Device-ID"))
	if err != nil {
		response.RespondError(ctx, "Failed to price stay", err, StatusFor)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Quote created successfully", quote, nil)
}

// GetQuote handles GET /api/v1/quotes/:id
func (c *Controller) GetQuote(ctx *gin.Context) {
	quote, err := c.service.GetQuote(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to get quote", err, StatusFor)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Quote retrieved successfully", quote, nil)
}

// UpdateQuote handles PUT /api/v1/quotes/:id
func (c *Controller) UpdateQuote(ctx *gin.Context) {
	var req QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	quote, err := c.service.UpdateQuote(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.RespondError(ctx, "Failed to update quote", err, StatusFor)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Quote updated successfully", quote, nil)
}

// ApplyPromo handles POST /api/v1/quotes/:id/promo
func (c *Controller) ApplyPromo(ctx *gin.Context) {
	var req ApplyPromoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	if req.DeviceID == "" {
		req.DeviceID = ctx.GetHeader("X-Device-ID")
	}

	quote, err := c.service.ApplyPromo(ctx.Request.Context(), ctx.Param("id"), req, middleware.UserID(ctx))
	if err != nil {
		response.RespondError(ctx, "Failed to apply promo code", err, StatusFor)
		return
	}

	message := "Promo code applied"
	if !quote.PromoApplied {
		message = quote.PromoMessage
	}
	response.RespondJSON(ctx, "success", http.StatusOK, message, quote, nil)
}

// RemovePromo handles DELETE /api/v1/quotes/:id/promo
func (c *Controller) RemovePromo(ctx *gin.Context) {
	quote, err := c.service.RemovePromo(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to remove promo code", err, StatusFor)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Promo code removed", quote, nil)
}

// PreviewQuote handles POST /api/v1/admin/quotes
func (c *Controller) PreviewQuote(ctx *gin.Context) {
	var req QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	quote, err := c.service.Preview(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, "Failed to price stay", err, StatusFor)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Quote computed successfully", quote, nil)
}

// StatusFor maps quote flow errors onto HTTP status codes
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrQuoteNotFound), errors.Is(err, rooms.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, rooms.ErrRoomUnavailable),
		errors.Is(err, promos.ErrPromoInFlight),
		errors.Is(err, promos.ErrStaleResponse),
		errors.Is(err, ErrQuoteBusy),
		errors.Is(err, ErrQuoteChanged),
		errors.Is(err, ErrQuoteClaimed):
		return http.StatusConflict
	case errors.Is(err, promos.ErrEmptyCode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
