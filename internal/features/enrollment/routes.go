package enrollment

import (
	"github.com/gin-gonic/gin"

	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/types"
)

// RegisterRoutes attaches enrollment endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	student := middleware.RequireRoles(types.RoleStudent)
	staff := middleware.RequireRoles(types.RoleMentor, types.RoleAdmin)

	router.POST("/courses/:courseId/enroll", append(student, handler.Enroll)...)
	router.DELETE("/courses/:courseId/enroll", append(student, handler.Unenroll)...)
	router.POST("/courses/:courseId/assign", append(staff, handler.Assign)...)
	router.GET("/enrollments", append(student, handler.MyEnrollments)...)
}
