package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-builder/internal/render"
	"cv-builder/internal/shared/config"
	"cv-builder/internal/shared/metrics"
	"cv-builder/internal/shared/server/middleware"
	"cv-builder/internal/shared/server/respond"
)

// RouteRegistrar is implemented by feature handlers.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// ViewRegistrar registers page routes at the engine root.
type ViewRegistrar interface {
	RegisterRoutes(r gin.IRoutes)
}

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config      config.Config
	Views       ViewRegistrar
	API         []RouteRegistrar
	RateLimiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())
	r.StaticFS("/static", http.FS(render.StaticFS()))
	if cfg.DataFile != "" {
		// Missing files answer 404, which the store treats as "no data yet".
		r.StaticFile("/cv-data.json", cfg.DataFile)
	}

	if deps.Views != nil {
		deps.Views.RegisterRoutes(r)
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules:   middleware.DefaultRateLimitRules(),
		Limiter: deps.RateLimiter,
	}))
	for _, h := range deps.API {
		h.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
