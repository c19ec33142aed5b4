package routes

import (
	"github.com/enzococca/pyarchinit-webapp/src/controllers"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/gin-gonic/gin"
)

func SetupUSRoutes(api *gin.RouterGroup, service *services.USService, guards Guards) {
	usController := controllers.NewUSController(service)

	us := api.Group("/us")
	us.Use(guards.Auth)
	{
		us.GET("/", usController.GetUSList)
		us.GET("/paginated", usController.GetUSPage)
		us.GET("/areas", usController.GetAreas)
		us.GET("/periodi", usController.GetPeriods)
		us.GET("/statistics", usController.GetStatistics)
		us.GET("/by-number/:sito/:area/:us", usController.GetUSByNumber)
		us.GET("/:id", usController.GetUS)
	}
}
