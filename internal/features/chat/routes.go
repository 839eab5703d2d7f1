package chat

import (
	"github.com/gin-gonic/gin"

	"github.com/codearc/codearc-server/internal/middleware"
)

// RegisterRoutes attaches chat endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	messages := router.Group("/messages", middleware.AuthenticateToken())
	{
		messages.POST("", handler.Send)
		messages.GET("/:userId", handler.History)
	}

	// Sibling of /messages: a static "contacts" segment under it would
	// collide with the :userId wildcard in gin's routing tree.
	router.GET("/contacts", middleware.AuthenticateToken(), handler.Contacts)
}
