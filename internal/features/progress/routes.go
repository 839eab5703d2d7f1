package progress

import (
	"github.com/gin-gonic/gin"

	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/types"
)

// RegisterRoutes attaches progress endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	student := middleware.RequireRoles(types.RoleStudent)

	router.POST("/chapters/:chapterId/complete", append(student, handler.CompleteChapter)...)
	router.GET("/courses/:courseId/progress", append(student, handler.CourseStanding)...)
	router.GET("/dashboard", append(student, handler.Dashboard)...)
}
