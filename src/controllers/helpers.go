package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/enzococca/pyarchinit-webapp/src/dtos"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/enzococca/pyarchinit-webapp/src/storage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	maxListLimit     = 1000
	maxMaterialLimit = 10000
)

// respondError maps service and storage errors onto HTTP responses.
func respondError(ctx *gin.Context, err error) {
	var upstream *storage.UpstreamError
	var transport *storage.TransportError
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrNoData):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &upstream):
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "storage server error", "upstream_status": upstream.StatusCode})
	case errors.As(err, &transport):
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "storage server unreachable", "cause": transport.Err.Error()})
	default:
		log.Ctx(ctx.Request.Context()).Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("request failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
	_ = ctx.Error(err)
}

func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// parseID reads an integer path parameter.
func parseID(ctx *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return id, true
}

// bindList binds skip/limit and the filter struct from the query string.
func bindList(ctx *gin.Context, maxLimit int, filter any) (dtos.ListParams, bool) {
	var params dtos.ListParams
	if err := ctx.ShouldBindQuery(&params); err != nil {
		badRequest(ctx, err)
		return params, false
	}
	if params.Limit > maxLimit {
		badRequest(ctx, fmt.Errorf("limit must be at most %d", maxLimit))
		return params, false
	}
	if filter != nil {
		if err := ctx.ShouldBindQuery(filter); err != nil {
			badRequest(ctx, err)
			return params, false
		}
	}
	return params, true
}

// bindPage binds page/page_size and the filter struct from the query string.
func bindPage(ctx *gin.Context, filter any) (dtos.PageParams, bool) {
	var params dtos.PageParams
	if err := ctx.ShouldBindQuery(&params); err != nil {
		badRequest(ctx, err)
		return params, false
	}
	if filter != nil {
		if err := ctx.ShouldBindQuery(filter); err != nil {
			badRequest(ctx, err)
			return params, false
		}
	}
	return params, true
}
