package routes

import (
	"github.com/enzococca/pyarchinit-webapp/src/controllers"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/gin-gonic/gin"
)

func SetupSiteRoutes(api *gin.RouterGroup, service *services.SiteService, guards Guards) {
	siteController := controllers.NewSiteController(service)

	sites := api.Group("/sites")
	sites.Use(guards.Auth)
	{
		sites.GET("/", siteController.GetSites)
		sites.GET("/paginated", siteController.GetSitesPage)
		sites.GET("/names", siteController.GetSiteNames)
		sites.GET("/by-name/:name", siteController.GetSiteByName)
		sites.GET("/:id", siteController.GetSite)
	}
}
