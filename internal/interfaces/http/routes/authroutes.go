// Package routes wires handlers onto the gin engine.
package routes

import (
	"github.com/gin-gonic/gin"

	"tonpay/internal/interfaces/http/handlers"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler *handlers.AuthHandler
}

// SetupAuthRoutes configures the login endpoint. Unauthenticated by nature.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/api/v1/auth")
	{
		auth.POST("/telegram", cfg.AuthHandler.Login)
	}
}
