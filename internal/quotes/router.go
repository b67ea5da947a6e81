package quotes

import (
	"royalstay/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupQuoteRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Guests may price a stay before signing in
	public := rg.Group("/quotes")
	public.Use(middleware.OptionalAuth())
	{
		public.POST("", controller.CreateQuote)             // POST /api/v1/quotes
		public.GET("/:id", controller.GetQuote)             // GET /api/v1/quotes/:id
		public.PUT("/:id", controller.UpdateQuote)          // PUT /api/v1/quotes/:id
		public.POST("/:id/promo", controller.ApplyPromo)    // POST /api/v1/quotes/:id/promo
		public.DELETE("/:id/promo", controller.RemovePromo) // DELETE /api/v1/quotes/:id/promo
	}

	admin := rg.Group("/admin/quotes")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.PreviewQuote) // POST /api/v1/admin/quotes
	}
}
