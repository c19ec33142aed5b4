package routes

import (
	"github.com/enzococca/pyarchinit-webapp/src/controllers"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/gin-gonic/gin"
)

// SetupMediaRoutes registers the media routes. Byte routes stay public so
// the CDN can fetch origins anonymously.
func SetupMediaRoutes(api *gin.RouterGroup, service *services.MediaService, guards Guards) {
	mediaController := controllers.NewMediaController(service)

	// Public routes
	public := api.Group("/media")
	{
		public.GET("/thumbnail/:id", mediaController.GetThumbnail)
		public.GET("/full/:id", mediaController.GetFull)
		public.GET("/file/:variant/*path", mediaController.GetFile)
	}

	// Protected routes
	media := api.Group("/media")
	media.Use(guards.Auth)
	{
		media.GET("/for-entity/:entity_type/:entity_id", mediaController.GetMediaForEntity)
		media.GET("/list", mediaController.GetMediaList)
		media.GET("/batch", mediaController.GetMediaBatch)
		media.GET("/statistics", mediaController.GetStatistics)
		media.GET("/cache/stats", mediaController.GetCacheStats)
		media.DELETE("/cache", guards.Admin, mediaController.ClearCache)
		media.GET("/:id", mediaController.GetMedia)
	}
}
