package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/types"
)

// RegisterRoutes attaches admin endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	adminGroup := router.Group("/admin", middleware.RequireRoles(types.RoleAdmin)...)
	{
		adminGroup.GET("/stats", handler.Stats)
		adminGroup.GET("/users", handler.Users)
		adminGroup.PUT("/users/:userId/approval", handler.SetApproval)
		adminGroup.DELETE("/users/:userId", handler.DeleteUser)
	}
}
