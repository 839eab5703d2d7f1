package user

import (
	"github.com/gin-gonic/gin"

	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/types"
)

// RegisterRoutes attaches user endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	users := router.Group("/users")

	users.GET("/profile", middleware.AuthenticateToken(), handler.Profile)
	users.GET("/students", append(middleware.RequireRoles(types.RoleMentor, types.RoleAdmin), handler.ListStudents)...)
}
