package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/enzococca/pyarchinit-webapp/src/dtos"
	"github.com/enzococca/pyarchinit-webapp/src/media"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/gin-gonic/gin"
)

const mediaCacheControl = "public, max-age=3600"

type MediaController struct {
	service *services.MediaService
}

func NewMediaController(service *services.MediaService) *MediaController {
	return &MediaController{service: service}
}

// GetMediaForEntity handles GET /for-entity/:entity_type/:entity_id
func (c *MediaController) GetMediaForEntity(ctx *gin.Context) {
	id, ok := parseID(ctx, "entity_id")
	if !ok {
		return
	}
	items, err := c.service.GetMediaForEntity(ctx.Request.Context(), ctx.Param("entity_type"), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

func (c *MediaController) GetMediaList(ctx *gin.Context) {
	var params dtos.MediaListParams
	if err := ctx.ShouldBindQuery(&params); err != nil {
		badRequest(ctx, err)
		return
	}
	list, err := c.service.GetMediaList(ctx.Request.Context(), params)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// GetMediaBatch handles GET /batch?ids=1,2,3
func (c *MediaController) GetMediaBatch(ctx *gin.Context) {
	ids, err := parseIDList(ctx.Query("ids"))
	if err != nil {
		badRequest(ctx, err)
		return
	}
	items, err := c.service.GetMediaBatch(ctx.Request.Context(), ids)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

func parseIDList(raw string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid media id %q", part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("ids is required")
	}
	return ids, nil
}

func (c *MediaController) GetStatistics(ctx *gin.Context) {
	stats, err := c.service.GetStatistics(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

func (c *MediaController) GetMedia(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	item, err := c.service.GetMedia(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// GetThumbnail redirects to the CDN or proxies the thumbnail bytes
func (c *MediaController) GetThumbnail(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	delivery, err := c.service.GetThumbnail(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	writeDelivery(ctx, delivery)
}

// GetFull redirects to the CDN or proxies the full-resolution bytes
func (c *MediaController) GetFull(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	delivery, err := c.service.GetFull(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	writeDelivery(ctx, delivery)
}

// GetFile proxies a stored file by path: GET /file/:variant/*path
func (c *MediaController) GetFile(ctx *gin.Context) {
	var thumbnail bool
	switch ctx.Param("variant") {
	case media.Variant(true):
		thumbnail = true
	case media.Variant(false):
	default:
		badRequest(ctx, fmt.Errorf("variant must be %q or %q", media.Variant(true), media.Variant(false)))
		return
	}
	payload, err := c.service.FetchPath(ctx.Request.Context(), ctx.Param("path"), thumbnail)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Header("Cache-Control", mediaCacheControl)
	ctx.Data(http.StatusOK, payload.ContentType, payload.Data)
}

func writeDelivery(ctx *gin.Context, d *services.Delivery) {
	if d.RedirectURL != "" {
		ctx.Redirect(http.StatusTemporaryRedirect, d.RedirectURL)
		return
	}
	ctx.Header("Cache-Control", mediaCacheControl)
	ctx.Data(http.StatusOK, d.Payload.ContentType, d.Payload.Data)
}

func (c *MediaController) GetCacheStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.service.CacheStats())
}

func (c *MediaController) ClearCache(ctx *gin.Context) {
	c.service.ClearCaches(ctx.Request.Context())
	ctx.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
