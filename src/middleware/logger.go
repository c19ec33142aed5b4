package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger attaches a request-scoped zerolog logger to the request context and
// logs one line per completed request.
func Logger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		reqLogger := log.With().Str("request_id", ctx.GetString(RequestIDKey)).Logger()
		ctx.Request = ctx.Request.WithContext(reqLogger.WithContext(ctx.Request.Context()))

		ctx.Next()

		status := ctx.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = reqLogger.Error()
		case status >= 400:
			event = reqLogger.Warn()
		default:
			event = reqLogger.Info()
		}
		if len(ctx.Errors) > 0 {
			event = event.Str("errors", ctx.Errors.String())
		}
		event.
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", ctx.ClientIP()).
			Msg("request")
	}
}
