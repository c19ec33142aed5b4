package controllers

import (
	"errors"
	"net/http"

	"github.com/enzococca/pyarchinit-webapp/src/middleware"
	"github.com/enzococca/pyarchinit-webapp/src/models"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// AuthenticateUser handles POST /login with a JSON or form body
func (c *UserController) AuthenticateUser(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	token, err := c.service.AuthenticateUser(ctx.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		ctx.Header("WWW-Authenticate", "Bearer")
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	case errors.Is(err, services.ErrInactiveUser):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	case err != nil:
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, token)
}

// GetCurrentUser handles GET /me
func (c *UserController) GetCurrentUser(ctx *gin.Context) {
	user, err := c.service.GetUserByID(ctx.Request.Context(), ctx.GetInt(middleware.UserIDKey))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

func (c *UserController) GetAllUsers(ctx *gin.Context) {
	users, err := c.service.GetAllUsers(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

func (c *UserController) CreateUser(ctx *gin.Context) {
	var req models.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	user, err := c.service.CreateUser(ctx.Request.Context(), req)
	if errors.Is(err, services.ErrUsernameTaken) {
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if id == ctx.GetInt(middleware.UserIDKey) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete the current user"})
		return
	}
	if err := c.service.DeleteUser(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
