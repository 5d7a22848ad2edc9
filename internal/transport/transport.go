package transport

import (
	"net/http"
	"time"

	"github.com/ds124wfegd/image-resizer/internal/pkg/metrics"
	"github.com/ds124wfegd/image-resizer/internal/transport/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// RouterOptions carries what the routes need besides the handler.
type RouterOptions struct {
	APIKey         string
	APIKeyHeader   string
	RequestTimeout time.Duration

	// Redis == nil disables the rate limit on guarded routes.
	Redis           *redis.Client
	RateLimit       int
	RateLimitWindow time.Duration
}

func InitRoutes(imgHandler *ImageHandler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(metrics.Handler())
	router.Use(middleware.CORS(opts.APIKeyHeader))
	router.Use(middleware.Timeout(opts.RequestTimeout))

	router.GET("/", imgHandler.Root)
	router.POST("/image", imgHandler.ResizeImage)

	guarded := router.Group("/")
	guarded.Use(middleware.APIKey(opts.APIKeyHeader, opts.APIKey))
	if opts.Redis != nil {
		guarded.Use(middleware.RateLimit(opts.Redis, "guarded", opts.RateLimit, opts.RateLimitWindow, middleware.ClientIPKey))
	}
	{
		guarded.POST("/imageWithKey", imgHandler.ResizeImage)
		guarded.GET("/testApiKey", imgHandler.CheckAPIKey)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "image-resizer",
		})
	})
	router.GET("/metrics", metrics.Exposer())

	registerPreflight(router)

	router.NoRoute(imgHandler.NotFound)
	return router
}

// registerPreflight answers OPTIONS on every path that has a route.
func registerPreflight(router *gin.Engine) {
	seen := make(map[string]bool)
	for _, route := range router.Routes() {
		if seen[route.Path] {
			continue
		}
		seen[route.Path] = true
		router.OPTIONS(route.Path, middleware.Preflight)
	}
}
