package controllers

import (
	"context"
	"net/http"

	"github.com/enzococca/pyarchinit-webapp/src/dtos"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/gin-gonic/gin"
)

type PotteryController struct {
	service *services.PotteryService
}

func NewPotteryController(service *services.PotteryService) *PotteryController {
	return &PotteryController{service: service}
}

// GetPottery handles GET requests to list pottery records
func (c *PotteryController) GetPottery(ctx *gin.Context) {
	var filter dtos.PotteryFilter
	params, ok := bindList(ctx, maxListLimit, &filter)
	if !ok {
		return
	}
	pottery, err := c.service.GetPottery(ctx.Request.Context(), filter, params)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pottery)
}

// GetPotteryPage handles GET requests for one page of pottery records
func (c *PotteryController) GetPotteryPage(ctx *gin.Context) {
	var filter dtos.PotteryFilter
	params, ok := bindPage(ctx, &filter)
	if !ok {
		return
	}
	page, err := c.service.GetPotteryPage(ctx.Request.Context(), filter, params)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

func (c *PotteryController) distinct(ctx *gin.Context, list func(context.Context, string) ([]string, error)) {
	values, err := list(ctx.Request.Context(), ctx.Query("sito"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, values)
}

func (c *PotteryController) GetForms(ctx *gin.Context)   { c.distinct(ctx, c.service.GetForms) }
func (c *PotteryController) GetFabrics(ctx *gin.Context) { c.distinct(ctx, c.service.GetFabrics) }
func (c *PotteryController) GetWares(ctx *gin.Context)   { c.distinct(ctx, c.service.GetWares) }

func (c *PotteryController) GetStatistics(ctx *gin.Context) {
	stats, err := c.service.GetStatistics(ctx.Request.Context(), ctx.Query("sito"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

func (c *PotteryController) GetPotteryItem(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	pottery, err := c.service.GetPotteryByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pottery)
}
