// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	_ "royalstay/docs"
	"royalstay/internal/bookings"
	"royalstay/internal/notifications"
	"royalstay/internal/pricing"
	"royalstay/internal/promos"
	"royalstay/internal/quotes"
	"royalstay/internal/rooms"
	"royalstay/internal/shared/config"
	"royalstay/internal/shared/database"
	"royalstay/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Publisher

	cache      cache.Service
	calculator *pricing.Calculator

	// shared between modules
	roomRepo       rooms.Repository
	roomService    rooms.Service
	promoRepo      promos.Repository
	promoService   promos.Service
	quoteService   quotes.Service
	bookingService bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher) *Router {
	if publisher == nil {
		publisher = notifications.NoopPublisher{}
	}
	return &Router{
		config:     cfg,
		db:         db,
		publisher:  publisher,
		cache:      cache.NewService(db.GetRedis()),
		calculator: pricing.NewCalculator(cfg.PricingRates()),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// order matters, later modules depend on earlier services
		r.setupRoomRoutes(api)
		r.setupPromoRoutes(api)
		r.setupQuoteRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// BookingService is available once SetupRoutes has run
func (r *Router) BookingService() bookings.Service {
	return r.bookingService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "royalstay-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "royalstay-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"kafka":       r.config.Kafka.Enabled,
			"timestamp":   time.Now(),
		})
	})
}

// setupRoomRoutes configures the room catalogue and inventory routes
func (r *Router) setupRoomRoutes(rg *gin.RouterGroup) {
	r.roomRepo = rooms.NewRepository(r.db.GetPostgreSQL())
	r.roomService = rooms.NewService(r.roomRepo, r.cache)
	roomController := rooms.NewController(r.roomService)

	rooms.SetupRoomRoutes(rg, roomController)
}

// setupPromoRoutes configures promo code administration
func (r *Router) setupPromoRoutes(rg *gin.RouterGroup) {
	r.promoRepo = promos.NewRepository(r.db.GetPostgreSQL())
	r.promoService = promos.NewService(r.promoRepo)
	promoController := promos.NewController(r.promoService)

	promos.SetupPromoRoutes(rg, promoController)
}

// setupQuoteRoutes configures the pricing session routes
func (r *Router) setupQuoteRoutes(rg *gin.RouterGroup) {
	store := quotes.NewRedisStore(r.db.GetRedis())
	r.quoteService = quotes.NewService(store, r.roomService, r.promoService, r.calculator, quotes.Options{
		TTL: r.config.Redis.QuoteTTL,
	})
	quoteController := quotes.NewController(r.quoteService)

	quotes.SetupQuoteRoutes(rg, quoteController)
}

// setupBookingRoutes configures customer and admin booking routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL(), r.roomRepo)
	r.bookingService = bookings.NewService(bookings.Dependencies{
		Repo:       bookingRepo,
		Quotes:     r.quoteService,
		Rooms:      r.roomService,
		Promos:     r.promoRepo,
		Validator:  r.promoService,
		Calculator: r.calculator,
		Publisher:  r.publisher,
		Cache:      r.cache,
	})
	bookingController := bookings.NewController(r.bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}
