package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sadriving/sadriving-backend/internal/config"
	"github.com/sadriving/sadriving-backend/internal/handler"
	"github.com/sadriving/sadriving-backend/internal/middleware"
	"github.com/sadriving/sadriving-backend/internal/response"
)

// contractCacheSeconds is how long browsers may cache the contract (1 day).
const contractCacheSeconds = 86400

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Catalog      *handler.CatalogHandler
	FAQ          *handler.FAQHandler
	Contract     *handler.ContractHandler
	Registration *handler.RegistrationHandler
	WS           *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// submitLimiter guards the endpoints that trigger a payment.
func SetupRouter(
	handlers *Handlers,
	submitLimiter *middleware.RateLimiter,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// The contract PDF is already compressed.
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality: middleware.DefaultBrotliConfig.Quality,
		Skipper: func(c *gin.Context) bool { return c.Request.URL.Path == "/contract.pdf" },
	}))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Static Downloads ──────────────────────────────────────────────
	router.GET("/contract.pdf", middleware.CacheControl(contractCacheSeconds), handlers.Contract.DownloadContract)

	submit := submitLimiter.Middleware()

	// ─── 1. Public Content ─────────────────────────────────────────────
	api := router.Group("/api/v1")
	{
		api.GET("/faqs", handlers.FAQ.ListFAQs)
		api.GET("/courses", handlers.Catalog.ListCourses)
		api.GET("/payment-methods", handlers.Catalog.ListPaymentMethods)
		api.POST("/quotes", handlers.Catalog.Quote)
	}

	// ─── 2. Registration ───────────────────────────────────────────────
	registrations := router.Group("/api/v1")
	registrations.Use(middleware.NoStore())
	{
		registrations.POST("/registrations", submit, handlers.Registration.Submit)

		registrations.POST("/registration-sessions", handlers.Registration.CreateSession)
		registrations.GET("/registration-sessions/:id", handlers.Registration.GetSession)
		registrations.PATCH("/registration-sessions/:id/fields", handlers.Registration.UpdateSessionField)
		registrations.POST("/registration-sessions/:id/submit", submit, handlers.Registration.SubmitSession)
	}

	// ─── 3. WebSocket ──────────────────────────────────────────────────
	wsGroup := router.Group("/ws/v1")
	{
		wsGroup.GET("/registration-sessions/:id/stream", handlers.WS.FormSessionStream)
	}

	return router
}
