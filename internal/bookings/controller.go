package bookings

import (
	"errors"
	"net/http"

	"royalstay/internal/promos"
	"royalstay/internal/quotes"
	"royalstay/internal/rooms"
	"royalstay/internal/shared/middleware"
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

// ConfirmBooking handles POST /api/v1/bookings/confirm
func (c *Controller) ConfirmBooking(ctx *gin.Context) {
	var req ConfirmBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	booking, err := c.service.ConfirmBooking(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.RespondError(ctx, "Failed to confirm booking", err, StatusFor)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking confirmed successfully", booking, nil)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	bookingID, ok := parseBookingID(ctx)
	if !ok {
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID)
	if err != nil {
		response.RespondError(ctx, "Failed to get booking", err, StatusFor)
		return
	}

	// Non-admin users can only see their own bookings
	if !middleware.IsAdmin(ctx) && booking.UserID != middleware.UserID(ctx) {
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Access denied", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", ToResponse(booking), nil)
}

// GetUserBookings handles GET /api/v1/users/bookings
func (c *Controller) GetUserBookings(ctx *gin.Context) {
	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	bookings, err := c.service.GetUserBookings(ctx.Request.Context(), middleware.UserID(ctx), query)
	if err != nil {
		response.RespondError(ctx, "Failed to get user bookings", err, StatusFor)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	bookingID, ok := parseBookingID(ctx)
	if !ok {
		return
	}

	booking, err := c.service.CancelBooking(ctx.Request.Context(), bookingID, middleware.UserID(ctx))
	if err != nil {
		response.RespondError(ctx, "Failed to cancel booking", err, StatusFor)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", booking, nil)
}

// ListBookings handles GET /api/v1/admin/bookings
func (c *Controller) ListBookings(ctx *gin.Context) {
	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	bookings, err := c.service.ListBookings(ctx.Request.Context(), query)
	if err != nil {
		response.RespondError(ctx, "Failed to get bookings", err, StatusFor)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

// CreateAdminBooking handles POST /api/v1/admin/bookings
func (c *Controller) CreateAdminBooking(ctx *gin.Context) {
	var req AdminBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	booking, err := c.service.CreateAdminBooking(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.RespondError(ctx, "Failed to create booking", err, StatusFor)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

// UpdateAdminBooking handles PUT /api/v1/admin/bookings/:id
func (c *Controller) UpdateAdminBooking(ctx *gin.Context) {
	bookingID, ok := parseBookingID(ctx)
	if !ok {
		return
	}

	var req AdminBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	booking, err := c.service.UpdateAdminBooking(ctx.Request.Context(), bookingID, req)
	if err != nil {
		response.RespondError(ctx, "Failed to update booking", err, StatusFor)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking updated successfully", booking, nil)
}

// RoomOccupancy handles GET /api/v1/admin/bookings/occupancy
func (c *Controller) RoomOccupancy(ctx *gin.Context) {
	var query OccupancyQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	occupancy, err := c.service.RoomOccupancy(ctx.Request.Context(), query)
	if err != nil {
		response.RespondError(ctx, "Failed to get occupancy", err, StatusFor)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Occupancy retrieved successfully", occupancy, nil)
}

// CancelBookingAsAdmin handles POST /api/v1/admin/bookings/:id/cancel
func (c *Controller) CancelBookingAsAdmin(ctx *gin.Context) {
	bookingID, ok := parseBookingID(ctx)
	if !ok {
		return
	}

	booking, err := c.service.CancelBookingAsAdmin(ctx.Request.Context(), bookingID)
	if err != nil {
		response.RespondError(ctx, "Failed to cancel booking", err, StatusFor)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", booking, nil)
}

func parseBookingID(ctx *gin.Context) (uuid.UUID, bool) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return uuid.Nil, false
	}
	return bookingID, true
}

// StatusFor maps booking flow errors onto HTTP status codes
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, quotes.ErrQuoteNotFound),
		errors.Is(err, rooms.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, promos.ErrEmptyCode):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotCancellable),
		errors.Is(err, ErrNotEditable),
		errors.Is(err, ErrPromoExhausted),
		errors.Is(err, ErrPromoNoLongerValid),
		errors.Is(err, promos.ErrPromoInFlight),
		errors.Is(err, quotes.ErrQuoteChanged),
		errors.Is(err, quotes.ErrQuoteClaimed),
		errors.Is(err, rooms.ErrRoomUnavailable),
		errors.Is(err, rooms.ErrInsufficientInventory):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
