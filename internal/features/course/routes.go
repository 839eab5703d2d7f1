package course

import (
	"github.com/gin-gonic/gin"

	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/types"
)

// RegisterRoutes attaches course endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	courses := router.Group("/courses")

	courses.GET("", middleware.AuthenticateToken(), handler.List)
	courses.GET("/:courseId", middleware.AuthenticateToken(), handler.GetByID)
	courses.POST("", append(middleware.RequireRoles(types.RoleMentor, types.RoleAdmin), handler.Create)...)
	courses.DELETE("/:courseId", append(middleware.RequireRoles(types.RoleMentor, types.RoleAdmin), handler.Delete)...)

	// Not under /courses: a static "mentor" segment would collide with the
	// :courseId wildcard in gin's routing tree.
	router.GET("/mentor/stats", append(middleware.RequireRoles(types.RoleMentor), handler.MentorStats)...)
}
