package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/codearc/codearc-server/internal/middleware"
)

// RegisterRoutes attaches authentication endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
		authGroup.PUT("/password", middleware.AuthenticateToken(), handler.ChangePassword)
	}
}
