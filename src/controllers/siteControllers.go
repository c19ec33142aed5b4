package controllers

import (
	"net/http"

	"github.com/enzococca/pyarchinit-webapp/src/dtos"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/gin-gonic/gin"
)

type SiteController struct {
	service *services.SiteService
}

func NewSiteController(service *services.SiteService) *SiteController {
	return &SiteController{service: service}
}

// GetSites handles GET requests to list sites
func (c *SiteController) GetSites(ctx *gin.Context) {
	var filter dtos.SiteFilter
	params, ok := bindList(ctx, maxListLimit, &filter)
	if !ok {
		return
	}
	sites, err := c.service.GetSites(ctx.Request.Context(), filter, params)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sites)
}

// GetSitesPage handles GET requests for one page of sites
func (c *SiteController) GetSitesPage(ctx *gin.Context) {
	var filter dtos.SiteFilter
	params, ok := bindPage(ctx, &filter)
	if !ok {
		return
	}
	page, err := c.service.GetSitesPage(ctx.Request.Context(), filter, params)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

func (c *SiteController) GetSiteNames(ctx *gin.Context) {
	names, err := c.service.GetSiteNames(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, names)
}

func (c *SiteController) GetSite(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	site, err := c.service.GetSiteByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, site)
}

func (c *SiteController) GetSiteByName(ctx *gin.Context) {
	site, err := c.service.GetSiteByName(ctx.Request.Context(), ctx.Param("name"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, site)
}
