package rooms

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

// GetAvailableRooms handles GET /api/v1/rooms
func (c *Controller) GetAvailableRooms(ctx *gin.Context) {
	var filters RoomFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListAvailableRooms(ctx.Request.Context(), filters.Page, filters.Limit)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get rooms", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Rooms retrieved successfully", result, nil)
}

// GetRoom handles GET /api/v1/rooms/:id, :id may also be the room slug
func (c *Controller) GetRoom(ctx *gin.Context) {
	room, err := c.service.GetRoom(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", StatusFor(err), "Failed to get room", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Room retrieved successfully", room, nil)
}

// ADMIN

// GetRooms handles GET /api/v1/admin/rooms
func (c *Controller) GetRooms(ctx *gin.Context) {
	var filters RoomFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListRooms(ctx.Request.Context(), filters)
	if err != nil {
		response.RespondJSON(ctx, "error", StatusFor(err), "Failed to get rooms", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Rooms retrieved successfully", result, nil)
}

// CreateRoom handles POST /api/v1/admin/rooms
func (c *Controller) CreateRoom(ctx *gin.Context) {
	var req RoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	room, err := c.service.CreateRoom(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", StatusFor(err), "Failed to create room", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Room created successfully", room, nil)
}

// UpdateRoom handles PUT /api/v1/admin/rooms/:id
func (c *Controller) UpdateRoom(ctx *gin.Context) {
	id, ok := parseRoomID(ctx)
	if !ok {
		return
	}

	var req RoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	room, err := c.service.UpdateRoom(ctx.Request.Context(), id, req)
	if err != nil {
		response.RespondJSON(ctx, "error", StatusFor(err), "Failed to update room", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Room updated successfully", room, nil)
}

// SetAvailability handles PATCH /api/v1/admin/rooms/:id/availability
func (c *Controller) SetAvailability(ctx *gin.Context) {
	id, ok := parseRoomID(ctx)
	if !ok {
		return
	}

	var req AvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	room, err := c.service.SetAvailability(ctx.Request.Context(), id, *req.IsAvailable)
	if err != nil {
		response.RespondJSON(ctx, "error", StatusFor(err), "Failed to update room availability", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Room availability updated successfully", room, nil)
}

// DeleteRoom handles DELETE /api/v1/admin/rooms/:id
func (c *Controller) DeleteRoom(ctx *gin.Context) {
	id, ok := parseRoomID(ctx)
	if !ok {
		return
	}

	if err := c.service.DeleteRoom(ctx.Request.Context(), id); err != nil {
		response.RespondJSON(ctx, "error", StatusFor(err), "Failed to delete room", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Room deleted successfully", nil, nil)
}

func parseRoomID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid room ID", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

// StatusFor maps room errors onto HTTP status codes
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRoomUnavailable), errors.Is(err, ErrInsufficientInventory):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidRoom):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
