package api

import (
	"github.com/gin-gonic/gin"

	"github.com/timmy/reconlens/internal/api/handler"
	"github.com/timmy/reconlens/internal/api/middleware"
	"github.com/timmy/reconlens/internal/logger"
)

// RouterConfig holds the HTTP-level settings of the gallery server.
type RouterConfig struct {
	Mode string
	CORS middleware.CORSConfig
	// Root is served read-only under /galleries.
	Root string
}

// SetupRouter configures the Gin router with all routes.
// Parameters:
//   - sites: site handler.
//   - health: health handler.
//   - cfg: mode, CORS and static root.
//   - log: base logger for request logging.
//
// Returns:
//   - *gin.Engine: configured router.
func SetupRouter(sites *handler.SiteHandler, health *handler.HealthHandler, cfg RouterConfig, log *logger.Logger) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/health", health.Health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/sites", sites.ListSites)
		v1.GET("/sites/:slug", sites.GetSite)
		v1.GET("/sites/:slug/captions", sites.GetCaptions)
		v1.POST("/sites/:slug/curate", sites.Curate)
		v1.GET("/sites/:slug/runs", sites.ListRuns)
		v1.GET("/runs/:batch", sites.ListBatch)
	}

	if cfg.Root != "" {
		r.Static("/galleries", cfg.Root)
	}

	return r
}
