package promos

import (
	"errors"
	"net/http"

	"royalstay/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreatePromo handles POST /api/v1/admin/promos
func (c *Controller) CreatePromo(ctx *gin.Context) {
	var req PromoCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	promo, err := c.service.CreatePromo(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to create promo code", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Promo code created successfully", promo, nil)
}

// GetPromos handles GET /api/v1/admin/promos
func (c *Controller) GetPromos(ctx *gin.Context) {
	var filters PromoFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}
	if filters.Page == 0 {
		filters.Page = 1
	}
	if filters.Limit == 0 {
		filters.Limit = 20
	}

	promos, total, err := c.service.ListPromos(ctx.Request.Context(), filters.ActiveOnly, filters.Limit, (filters.Page-1)*filters.Limit)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get promo codes", nil, err.Error())
		return
	}

	result := PromoListResponse{
		Promos:     promos,
		Total:      total,
		Page:       filters.Page,
		Limit:      filters.Limit,
		TotalPages: int((total + int64(filters.Limit) - 1) / int64(filters.Limit)),
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Promo codes retrieved successfully", result, nil)
}

// GetPromo handles GET /api/v1/admin/promos/:id
func (c *Controller) GetPromo(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	promo, err := c.service.GetPromo(ctx.Request.Context(), id)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to get promo code", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Promo code retrieved successfully", promo, nil)
}

// UpdatePromo handles PUT /api/v1/admin/promos/:id
func (c *Controller) UpdatePromo(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req PromoCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	promo, err := c.service.UpdatePromo(ctx.Request.Context(), id, req)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to update promo code", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Promo code updated successfully", promo, nil)
}

// DeletePromo handles DELETE /api/v1/admin/promos/:id
func (c *Controller) DeletePromo(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.service.DeletePromo(ctx.Request.Context(), id); err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to delete promo code", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Promo code deleted successfully", nil, nil)
}

func parseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid promo code ID", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrPromoNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidPromo):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
