package controllers

import (
	"fmt"
	"net/http"

	"github.com/enzococca/pyarchinit-webapp/src/dtos"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/gin-gonic/gin"
)

type ExportController struct {
	service *services.ExportService
}

func NewExportController(service *services.ExportService) *ExportController {
	return &ExportController{service: service}
}

func sendFile(ctx *gin.Context, file *services.ExportFile) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	ctx.Data(http.StatusOK, file.ContentType, file.Data)
}

// ExportUS returns a handler exporting stratigraphic units in format
func (c *ExportController) ExportUS(format services.Format) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var filter dtos.USFilter
		if err := ctx.ShouldBindQuery(&filter); err != nil {
			badRequest(ctx, err)
			return
		}
		file, err := c.service.ExportUS(ctx.Request.Context(), filter, format)
		if err != nil {
			respondError(ctx, err)
			return
		}
		sendFile(ctx, file)
	}
}

// ExportMaterials returns a handler exporting inventory records in format
func (c *ExportController) ExportMaterials(format services.Format) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var filter dtos.MaterialFilter
		if err := ctx.ShouldBindQuery(&filter); err != nil {
			badRequest(ctx, err)
			return
		}
		file, err := c.service.ExportMaterials(ctx.Request.Context(), filter, format)
		if err != nil {
			respondError(ctx, err)
			return
		}
		sendFile(ctx, file)
	}
}

// ExportPottery returns a handler exporting pottery records in format
func (c *ExportController) ExportPottery(format services.Format) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var filter dtos.PotteryFilter
		if err := ctx.ShouldBindQuery(&filter); err != nil {
			badRequest(ctx, err)
			return
		}
		file, err := c.service.ExportPottery(ctx.Request.Context(), filter, format)
		if err != nil {
			respondError(ctx, err)
			return
		}
		sendFile(ctx, file)
	}
}

// ExportSites returns a handler exporting sites in format
func (c *ExportController) ExportSites(format services.Format) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var filter dtos.SiteFilter
		if err := ctx.ShouldBindQuery(&filter); err != nil {
			badRequest(ctx, err)
			return
		}
		file, err := c.service.ExportSites(ctx.Request.Context(), filter, format)
		if err != nil {
			respondError(ctx, err)
			return
		}
		sendFile(ctx, file)
	}
}

func (c *ExportController) ExportMaterialsSummary(ctx *gin.Context) {
	file, err := c.service.ExportMaterialsSummary(ctx.Request.Context(), ctx.Query("sito"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	sendFile(ctx, file)
}
