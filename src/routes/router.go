package routes

import (
	"net/http"

	"github.com/enzococca/pyarchinit-webapp/src/controllers"
	"github.com/enzococca/pyarchinit-webapp/src/metrics"
	"github.com/enzococca/pyarchinit-webapp/src/middleware"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"
)

// Services bundles everything the HTTP surface is wired to.
type Services struct {
	DB        *gorm.DB
	AppName   string
	Sites     *services.SiteService
	US        *services.USService
	Materials *services.MaterialService
	Pottery   *services.PotteryService
	Media     *services.MediaService
	Export    *services.ExportService
	Users     *services.UserService
}

// RouterConfig carries the HTTP-level settings.
type RouterConfig struct {
	AuthEnabled     bool
	SecretKey       string
	CORSOrigins     []string
	AllowAllOrigins bool
}

// NewRouter builds the gin engine with middleware and every route group.
func NewRouter(cfg RouterConfig, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(svc.AppName),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.SetupCORS(cfg.CORSOrigins, cfg.AllowAllOrigins),
	)

	health := controllers.NewHealthController(svc.DB, svc.AppName)
	router.GET("/health", health.Health)
	router.GET("/metrics", gin.WrapH(metricsHandler(svc.Media)))

	api := router.Group("/api")
	api.GET("", health.Index)

	guards := NewGuards(cfg.AuthEnabled, cfg.SecretKey)
	SetupSiteRoutes(api, svc.Sites, guards)
	SetupUSRoutes(api, svc.US, guards)
	SetupMaterialRoutes(api, svc.Materials, guards)
	SetupPotteryRoutes(api, svc.Pottery, guards)
	SetupMediaRoutes(api, svc.Media, guards)
	SetupExportRoutes(api, svc.Export, guards)
	SetupUserRoutes(api, svc.Users, cfg.SecretKey)

	return router
}

// metricsHandler serves the process-wide collectors plus this router's media
// cache collector, which lives in its own registry.
func metricsHandler(media *services.MediaService) http.Handler {
	gatherers := prometheus.Gatherers{prometheus.DefaultGatherer}
	if media != nil {
		reg := prometheus.NewRegistry()
		reg.MustRegister(metrics.NewCacheCollector(media.CacheStats))
		gatherers = append(gatherers, reg)
	}
	return promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})
}
