package rooms

import (
	"royalstay/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoomRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Public catalogue
	public := rg.Group("/rooms")
	{
		public.GET("", controller.GetAvailableRooms) // GET /api/v1/rooms
		public.GET("/:id", controller.GetRoom)       // GET /api/v1/rooms/:id
	}

	admin := rg.Group("/admin/rooms")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateRoom)                         // POST /api/v1/admin/rooms
		admin.GET("", controller.GetRooms)                            // GET /api/v1/admin/rooms
		admin.GET("/:id", controller.GetRoom)                         // GET /api/v1/admin/rooms/:id
		admin.PUT("/:id", controller.UpdateRoom)                      // PUT /api/v1/admin/rooms/:id
		admin.PATCH("/:id/availability", controller.SetAvailability) // PATCH /api/v1/admin/rooms/:id/availability
		admin.DELETE("/:id", controller.DeleteRoom)                   // DELETE /api/v1/admin/rooms/:id
	}
}
