package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/use-agent/leekduck/api/handler"
	"github.com/use-agent/leekduck/api/middleware"
	"github.com/use-agent/leekduck/cache"
	"github.com/use-agent/leekduck/config"
	"github.com/use-agent/leekduck/models"
)

// Deps are the collaborators the routes need. Cache and OnResult may be
// nil.
type Deps struct {
	Lister   handler.Lister
	Stats    models.TablesStats
	Version  string
	Cache    *cache.Cache
	OnResult func(*models.ListResponse)
}

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → Metrics
//	API:     Auth (if enabled) → RateLimit
//
// Health and /metrics stay outside auth so probes and scrapers always work.
func NewRouter(deps Deps, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health(deps.Stats, deps.Version, startTime))

	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	for _, kind := range models.AllKinds {
		protected.GET("/"+string(kind), handler.List(kind, deps.Lister, deps.Cache, deps.OnResult))
	}
	// Alias matching the site's own path.
	protected.GET("/raid-bosses", handler.List(models.KindRaids, deps.Lister, deps.Cache, deps.OnResult))

	return r
}
