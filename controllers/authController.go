package controllers

import (
	"SaudeSync/handlers"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{
		Handler: authHandler,
	}
}

// RegisterRoutes initializes the authentication routes. authMiddleware guards logout.
func (ac *AuthController) RegisterRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	// Public routes: No authentication required
	router.POST("/auth/login", ac.Handler.Login)
	router.GET("/auth/session", ac.Handler.Session)

	// Protected routes: Requires a valid session
	authGroup := router.Group("/auth").Use(authMiddleware)
	{
		authGroup.POST("/logout", ac.Handler.Logout)
	}
}
