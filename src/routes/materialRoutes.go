package routes

import (
	"github.com/enzococca/pyarchinit-webapp/src/controllers"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/gin-gonic/gin"
)

func SetupMaterialRoutes(api *gin.RouterGroup, service *services.MaterialService, guards Guards) {
	materialController := controllers.NewMaterialController(service)

	materials := api.Group("/materiali")
	materials.Use(guards.Auth)
	{
		materials.GET("/", materialController.GetMaterials)
		materials.GET("/paginated", materialController.GetMaterialsPage)
		materials.GET("/summary", materialController.GetSummary)
		materials.GET("/boxes", materialController.GetBoxes)
		materials.GET("/storage-locations", materialController.GetStorageLocations)
		materials.GET("/types", materialController.GetTypes)
		materials.GET("/statistics", materialController.GetStatistics)
		materials.GET("/:id", materialController.GetMaterial)
	}
}
