package routes

import (
	"github.com/enzococca/pyarchinit-webapp/src/controllers"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/gin-gonic/gin"
)

func SetupExportRoutes(api *gin.RouterGroup, service *services.ExportService, guards Guards) {
	exportController := controllers.NewExportController(service)

	export := api.Group("/export")
	export.Use(guards.Auth)
	{
		export.GET("/us/excel", exportController.ExportUS(services.FormatExcel))
		export.GET("/us/pdf", exportController.ExportUS(services.FormatPDF))
		export.GET("/materiali/excel", exportController.ExportMaterials(services.FormatExcel))
		export.GET("/materiali/pdf", exportController.ExportMaterials(services.FormatPDF))
		export.GET("/materiali/summary/excel", exportController.ExportMaterialsSummary)
		export.GET("/pottery/excel", exportController.ExportPottery(services.FormatExcel))
		export.GET("/pottery/pdf", exportController.ExportPottery(services.FormatPDF))
		export.GET("/sites/excel", exportController.ExportSites(services.FormatExcel))
		export.GET("/sites/pdf", exportController.ExportSites(services.FormatPDF))
	}
}
