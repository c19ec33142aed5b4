package routes

import (
	"github.com/enzococca/pyarchinit-webapp/src/controllers"
	"github.com/enzococca/pyarchinit-webapp/src/middleware"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers login and account management. These routes are
// always guarded by bearer tokens, whatever the data routes use.
func SetupUserRoutes(api *gin.RouterGroup, service *services.UserService, secret string) {
	userController := controllers.NewUserController(service)

	auth := api.Group("/auth")

	// Public routes
	auth.POST("/login", userController.AuthenticateUser)

	// Protected routes
	protected := auth.Group("")
	protected.Use(middleware.AuthMiddleware(secret))
	{
		protected.GET("/me", userController.GetCurrentUser)
	}

	users := auth.Group("/users")
	users.Use(middleware.AuthMiddleware(secret), middleware.RequireAdmin())
	{
		users.GET("", userController.GetAllUsers)
		users.POST("", userController.CreateUser)
		users.DELETE("/:id", userController.DeleteUser)
	}
}
