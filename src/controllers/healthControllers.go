package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	db      *gorm.DB
	appName string
}

func NewHealthController(db *gorm.DB, appName string) *HealthController {
	return &HealthController{db: db, appName: appName}
}

// Health reports liveness and database reachability
func (c *HealthController) Health(ctx *gin.Context) {
	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request.Context())
	}
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Index lists the API's top-level resources
func (c *HealthController) Index(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": c.appName,
		"version": "1.0.0",
		"endpoints": []gin.H{
			{"path": "/api/sites", "description": "Archaeological sites"},
			{"path": "/api/us", "description": "Stratigraphic units"},
			{"path": "/api/materiali", "description": "Materials inventory"},
			{"path": "/api/pottery", "description": "Pottery records"},
			{"path": "/api/media", "description": "Media files"},
			{"path": "/api/export", "description": "Export to PDF/Excel"},
			{"path": "/api/auth", "description": "Authentication"},
		},
	})
}
