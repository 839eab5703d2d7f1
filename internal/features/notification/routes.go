package notification

import (
	"github.com/gin-gonic/gin"

	"github.com/codearc/codearc-server/internal/middleware"
)

// RegisterRoutes attaches notification endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	notifications := router.Group("/notifications", middleware.AuthenticateToken())
	{
		notifications.GET("", handler.List)
		notifications.GET("/unread-count", handler.UnreadCount)
		notifications.PUT("/:notificationId/read", handler.MarkRead)
		// POST, not PUT: a static "read-all" segment in the PUT tree would
		// collide with the :notificationId wildcard.
		notifications.POST("/read-all", handler.MarkAllRead)
	}
}
