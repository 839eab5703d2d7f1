package chat

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/features/notification"
	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/response"
	"github.com/codearc/codearc-server/pkg/types"
)

// Handler processes chat HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a chat handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Send delivers a message to another user.
func (h *Handler) Send(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	var req struct {
		ReceiverID uuid.UUID `json:"receiverId"`
		Content    string    `json:"content"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.ReceiverID == uuid.Nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "receiverId and content are required", err)
		return
	}

	msg, err := Send(h.db.WithContext(c.Request.Context()), usr.ID, req.ReceiverID, req.Content)
	if err != nil {
		h.respondError(c, err, "failed to send message")
		return
	}

	notification.SendToUser(h.db, h.logger, req.ReceiverID,
		"New Message",
		"You have a new message from "+usr.Name+".",
		types.NotificationInfo)

	response.Created(c, msg, "Message sent")
}

// History returns the visible conversation with another user.
func (h *Handler) History(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	otherID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	messages, err := History(h.db.WithContext(c.Request.Context()), usr.ID, otherID)
	if err != nil {
		h.respondError(c, err, "failed to load conversation")
		return
	}

	response.Success(c, http.StatusOK, messages, "", nil)
}

// Contacts lists everyone the caller may message, with unread counts.
func (h *Handler) Contacts(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	contacts, err := Contacts(h.db.WithContext(c.Request.Context()), usr.ID, usr.Role)
	if err != nil {
		h.respondError(c, err, "failed to list contacts")
		return
	}

	response.Success(c, http.StatusOK, contacts, "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrReceiverNotFound):
		status = http.StatusNotFound
		message = "Receiver not found."
	case errors.Is(err, ErrEmptyMessage):
		status = http.StatusBadRequest
		message = "Message content is required."
	case errors.Is(err, ErrSelfMessage):
		status = http.StatusBadRequest
		message = "You cannot message yourself."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
