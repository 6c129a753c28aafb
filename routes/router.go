package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/middleware"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/rafaelsantos7520/draymodas/routes/cms_routes"
	"github.com/rafaelsantos7520/draymodas/routes/ecommerce_routes"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/redis/go-redis/v9"
)

// Options configures the HTTP router. Services must be initialized before NewRouter runs.
type Options struct {
	CORSOrigins    []string
	Redis          *redis.Client // nil disables rate limiting
	AdminRateLimit int
	HealthCheck    func(ctx context.Context) error
}

// NewRouter builds the gin engine with the storefront under /api/v1/store and
// the CMS under /api/v1/admin.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/health", func(c *gin.Context) {
		if opts.HealthCheck != nil {
			ctx, cancel := config.WithCustomTimeout(2 * time.Second)
			defer cancel()
			if err := opts.HealthCheck(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "database unavailable"))
				return
			}
		}
		c.JSON(http.StatusOK, models.SuccessResponse(c, "ok", nil))
	})

	api := router.Group("/api/v1")

	// Public storefront (no rate limiter)
	ecommerce_routes.SetupStorefrontRoutes(api)

	// CMS at /api/v1/admin
	adminGroup := api.Group("/admin")
	if opts.AdminRateLimit > 0 {
		adminGroup.Use(middleware.RateLimiter(opts.Redis, opts.AdminRateLimit, time.Minute))
	}
	auth := middleware.AdminAuthMiddleware(services.GetJWTService(), services.GetAdminAuthService())
	cms_routes.SetupAdminRoutes(adminGroup, auth)
	cms_routes.SetupCategoryRoutes(adminGroup, auth)
	cms_routes.SetupProductRoutes(adminGroup, auth)
	cms_routes.SetupSizeRoutes(adminGroup, auth)

	return router
}
