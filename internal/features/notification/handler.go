package notification

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/pagination"
	"github.com/codearc/codearc-server/pkg/response"
)

// Handler processes notification HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a notification handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// List returns the authenticated user's notifications, newest first.
func (h *Handler) List(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	params := pagination.Extract(c)

	notifications, total, err := List(h.db.WithContext(c.Request.Context()), usr.ID, params)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to list notifications", err)
		return
	}

	response.Success(c, http.StatusOK, notifications, "", pagination.MetadataFrom(total, params))
}

// UnreadCount returns the authenticated user's unread notification count.
func (h *Handler) UnreadCount(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	count, err := UnreadCount(h.db.WithContext(c.Request.Context()), usr.ID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to count notifications", err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unread": count}, "", nil)
}

// MarkRead marks a single notification as read.
func (h *Handler) MarkRead(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	id, err := uuid.Parse(c.Param("notificationId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid notification id", err)
		return
	}

	if err := MarkRead(h.db.WithContext(c.Request.Context()), usr.ID, id); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to mark notification read", err)
		return
	}

	response.Success(c, http.StatusOK, true, "", nil)
}

// MarkAllRead marks all of the user's notifications as read.
func (h *Handler) MarkAllRead(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	if err := MarkAllRead(h.db.WithContext(c.Request.Context()), usr.ID); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to mark notifications read", err)
		return
	}

	response.Success(c, http.StatusOK, true, "", nil)
}
