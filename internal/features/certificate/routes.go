package certificate

import (
	"github.com/gin-gonic/gin"

	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/types"
)

// RegisterRoutes attaches certificate endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	student := middleware.RequireRoles(types.RoleStudent)

	router.GET("/courses/:courseId/certificate", append(student, handler.Download)...)
}
