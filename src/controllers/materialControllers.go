package controllers

import (
	"net/http"

	"github.com/enzococca/pyarchinit-webapp/src/dtos"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	service *services.MaterialService
}

func NewMaterialController(service *services.MaterialService) *MaterialController {
	return &MaterialController{service: service}
}

// GetMaterials handles GET requests to list inventory records
func (c *MaterialController) GetMaterials(ctx *gin.Context) {
	var filter dtos.MaterialFilter
	params, ok := bindList(ctx, maxMaterialLimit, &filter)
	if !ok {
		return
	}
	materials, err := c.service.GetMaterials(ctx.Request.Context(), filter, params)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, materials)
}

// GetMaterialsPage handles GET requests for one page of inventory records
func (c *MaterialController) GetMaterialsPage(ctx *gin.Context) {
	var filter dtos.MaterialFilter
	params, ok := bindPage(ctx, &filter)
	if !ok {
		return
	}
	page, err := c.service.GetMaterialsPage(ctx.Request.Context(), filter, params)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

// GetSummary handles GET requests for the storage and box breakdown
func (c *MaterialController) GetSummary(ctx *gin.Context) {
	summary, err := c.service.GetSummary(ctx.Request.Context(), ctx.Query("sito"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

func (c *MaterialController) GetBoxes(ctx *gin.Context) {
	boxes, err := c.service.GetBoxes(ctx.Request.Context(), ctx.Query("sito"), ctx.Query("luogo_conservazione"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, boxes)
}

func (c *MaterialController) GetStorageLocations(ctx *gin.Context) {
	locations, err := c.service.GetStorageLocations(ctx.Request.Context(), ctx.Query("sito"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, locations)
}

func (c *MaterialController) GetTypes(ctx *gin.Context) {
	types, err := c.service.GetTypes(ctx.Request.Context(), ctx.Query("sito"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, types)
}

func (c *MaterialController) GetStatistics(ctx *gin.Context) {
	stats, err := c.service.GetStatistics(ctx.Request.Context(), ctx.Query("sito"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

func (c *MaterialController) GetMaterial(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	material, err := c.service.GetMaterialByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, material)
}
