package controllers

import (
	"net/http"

	"github.com/enzococca/pyarchinit-webapp/src/dtos"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/gin-gonic/gin"
)

type USController struct {
	service *services.USService
}

func NewUSController(service *services.USService) *USController {
	return &USController{service: service}
}

// GetUSList handles GET requests to list stratigraphic units
func (c *USController) GetUSList(ctx *gin.Context) {
	var filter dtos.USFilter
	params, ok := bindList(ctx, maxListLimit, &filter)
	if !ok {
		return
	}
	units, err := c.service.GetUSList(ctx.Request.Context(), filter, params)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, units)
}

// GetUSPage handles GET requests for one page of stratigraphic units
func (c *USController) GetUSPage(ctx *gin.Context) {
	var filter dtos.USFilter
	params, ok := bindPage(ctx, &filter)
	if !ok {
		return
	}
	page, err := c.service.GetUSPage(ctx.Request.Context(), filter, params)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

func (c *USController) GetAreas(ctx *gin.Context) {
	areas, err := c.service.GetAreas(ctx.Request.Context(), ctx.Query("sito"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, areas)
}

func (c *USController) GetPeriods(ctx *gin.Context) {
	periods, err := c.service.GetPeriods(ctx.Request.Context(), ctx.Query("sito"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, periods)
}

func (c *USController) GetStatistics(ctx *gin.Context) {
	stats, err := c.service.GetStatistics(ctx.Request.Context(), ctx.Query("sito"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

func (c *USController) GetUS(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	unit, err := c.service.GetUSByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, unit)
}

// GetUSByNumber handles GET /by-number/:sito/:area/:us
func (c *USController) GetUSByNumber(ctx *gin.Context) {
	unit, err := c.service.GetUSByNumber(ctx.Request.Context(), ctx.Param("sito"), ctx.Param("area"), ctx.Param("us"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, unit)
}
