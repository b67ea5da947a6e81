package bookings

import (
	"royalstay/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(), middleware.RequireRoles(middleware.RoleCustomer, middleware.RoleAdmin))
	{
		bookings.POST("/confirm", controller.ConfirmBooking)   // POST /api/v1/bookings/confirm
		bookings.GET("/:id", controller.GetBooking)            // GET /api/v1/bookings/:id
		bookings.POST("/:id/cancel", controller.CancelBooking) // POST /api/v1/bookings/:id/cancel
	}

	users := rg.Group("/users")
	users.Use(middleware.JWTAuth(), middleware.RequireRoles(middleware.RoleCustomer, middleware.RoleAdmin))
	{
		users.GET("/bookings", controller.GetUserBookings) // GET /api/v1/users/bookings
	}

	admin := rg.Group("/admin/bookings")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.ListBookings)                     // GET /api/v1/admin/bookings
		admin.GET("/occupancy", controller.RoomOccupancy)          // GET /api/v1/admin/bookings/occupancy
		admin.POST("", controller.CreateAdminBooking)              // POST /api/v1/admin/bookings
		admin.PUT("/:id", controller.UpdateAdminBooking)           // PUT /api/v1/admin/bookings/:id
		admin.POST("/:id/cancel", controller.CancelBookingAsAdmin) // POST /api/v1/admin/bookings/:id/cancel
	}
}

// Route definitions for reference:
//
// BOOKING CONFIRMATION
// POST   /api/v1/bookings/confirm                     - Confirm a priced quote
// Request body: { "quote_id": "...", "guest_name": "...", "guest_email": "..." }
//
// BOOKING RETRIEVAL / CANCELLATION
// GET    /api/v1/bookings/:id                         - Get specific booking
// POST   /api/v1/bookings/:id/cancel                  - Cancel a booking
// GET    /api/v1/users/bookings?page=1&limit=10       - Current user's bookings
//
// Key Flow:
// 1. Guest prices a stay with POST /quotes and may apply a promo code
// 2. Guest confirms with POST /bookings/confirm
// 3. The quote is re-priced, rooms are reserved and the booking stored in one transaction
// 4. A BOOKING_CONFIRMED event is published for downstream consumers
