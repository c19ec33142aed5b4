package routes

import (
	"github.com/enzococca/pyarchinit-webapp/src/controllers"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/gin-gonic/gin"
)

func SetupPotteryRoutes(api *gin.RouterGroup, service *services.PotteryService, guards Guards) {
	potteryController := controllers.NewPotteryController(service)

	pottery := api.Group("/pottery")
	pottery.Use(guards.Auth)
	{
		pottery.GET("/", potteryController.GetPottery)
		pottery.GET("/paginated", potteryController.GetPotteryPage)
		pottery.GET("/forms", potteryController.GetForms)
		pottery.GET("/fabrics", potteryController.GetFabrics)
		pottery.GET("/wares", potteryController.GetWares)
		pottery.GET("/statistics", potteryController.GetStatistics)
		pottery.GET("/:id", potteryController.GetPotteryItem)
	}
}
