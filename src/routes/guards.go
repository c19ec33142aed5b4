package routes

import (
	"github.com/enzococca/pyarchinit-webapp/src/middleware"
	"github.com/gin-gonic/gin"
)

// Guards are the access checks applied to protected route groups.
type Guards struct {
	Auth  gin.HandlerFunc
	Admin gin.HandlerFunc
}

// NewGuards builds bearer-token guards, or pass-through guards when auth is disabled.
func NewGuards(enabled bool, secret string) Guards {
	return Guards{
		Auth:  middleware.Optional(enabled, middleware.AuthMiddleware(secret)),
		Admin: middleware.Optional(enabled, middleware.RequireAdmin()),
	}
}
