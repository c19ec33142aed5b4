package middleware

import (
	"net/http"
	"strings"

	"github.com/enzococca/pyarchinit-webapp/src/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by AuthMiddleware.
const (
	UserIDKey   = "userId"
	UsernameKey = "username"
	RoleKey     = "role"
)

// AuthMiddleware requires a valid HS256 bearer token signed with secret.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(ctx *gin.Context) {
		// Gets the authorization header
		authHeader := strings.TrimSpace(ctx.GetHeader("Authorization"))
		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		// Divides the header into Bearer and Token
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			return
		}

		// Verifies signature, algorithm and expiry
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if id, ok := claims["id"].(float64); ok {
			ctx.Set(UserIDKey, int(id))
		}
		if sub, ok := claims["sub"].(string); ok {
			ctx.Set(UsernameKey, sub)
		}
		if role, ok := claims["role"].(string); ok {
			ctx.Set(RoleKey, role)
		}
		ctx.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetString(RoleKey) != models.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
			return
		}
		ctx.Next()
	}
}

// Optional returns h when enabled and a pass-through otherwise.
func Optional(enabled bool, h gin.HandlerFunc) gin.HandlerFunc {
	if enabled {
		return h
	}
	return func(ctx *gin.Context) { ctx.Next() }
}
