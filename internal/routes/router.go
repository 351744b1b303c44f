package routes

import (
	"asapcut/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all application routes.
func SetupRoutes(r *gin.Engine) {
	// Public routes first: login, logout, registration.
	RegisterAuthRoutes(r)

	// Everything else requires a valid token.
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(authRequired)
	}
}
