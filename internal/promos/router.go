package promos

import (
	"royalstay/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPromoRoutes(rg *gin.RouterGroup, controller *Controller) {
	admin := rg.Group("/admin/promos")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreatePromo)       // POST /api/v1/admin/promos
		admin.GET("", controller.GetPromos)          // GET /api/v1/admin/promos
		admin.GET("/:id", controller.GetPromo)       // GET /api/v1/admin/promos/:id
		admin.PUT("/:id", controller.UpdatePromo)    // PUT /api/v1/admin/promos/:id
		admin.DELETE("/:id", controller.DeletePromo) // DELETE /api/v1/admin/promos/:id
	}
}
