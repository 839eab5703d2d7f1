package chapter

import (
	"github.com/gin-gonic/gin"

	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/types"
)

// RegisterRoutes attaches chapter endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	staff := middleware.RequireRoles(types.RoleMentor, types.RoleAdmin)

	router.GET("/courses/:courseId/content", middleware.AuthenticateToken(), handler.CourseContent)
	router.POST("/courses/:courseId/chapters", append(staff, handler.Create)...)

	chapters := router.Group("/chapters")
	chapters.PUT("/:chapterId", append(staff, handler.Update)...)
	chapters.DELETE("/:chapterId", append(staff, handler.Delete)...)
}
