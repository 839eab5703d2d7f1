package course

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

// Handler processes course HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a course handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Create inserts a new course owned by the calling mentor and announces it
// to students and admins.
func (h *Handler) Create(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		ImageURL    *string `json:"imageUrl"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course payload", err)
		return
	}

	crs, err := Create(h.db.WithContext(c.Request.Context()), CreateInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		MentorID:    usr.ID,
	})
	if err != nil {
		h.respondError(c, err, "failed to create course")
		return
	}

	// Announcements are best-effort; the course exists either way.
	notification.SendToRole(h.db, h.logger, types.RoleStudent,
		"New Course Available",
		"A new course \""+crs.Title+"\" is now available. Check it out!",
		types.NotificationInfo)
	notification.SendToRole(h.db, h.logger, types.RoleAdmin,
		"New Course Alert",
		"Mentor "+usr.Name+" published a new course: "+crs.Title,
		types.NotificationInfo)

	response.Created(c, crs, "Course created")
}

// GetByID fetches a single course.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	crs, err := Get(h.db.WithContext(c.Request.Context()), id)
	if err != nil {
		h.respondError(c, err, "failed to load course")
		return
	}

	response.Success(c, http.StatusOK, crs, "", nil)
}

// List returns the course catalog for the caller's role.
func (h *Handler) List(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	views, err := ListForRole(h.db.WithContext(c.Request.Context()), usr.ID, usr.Role)
	if err != nil {
		h.respondError(c, err, "failed to list courses")
		return
	}

	response.Success(c, http.StatusOK, views, "", nil)
}

// Delete removes a course and everything attached to it.
func (h *Handler) Delete(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	id, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	db := h.db.WithContext(c.Request.Context())
	if _, err := RequireOwnership(db, id, usr.ID, usr.Role); err != nil {
		h.respondError(c, err, "failed to delete course")
		return
	}

	if err := Delete(db, id); err != nil {
		h.respondError(c, err, "failed to delete course")
		return
	}

	response.Success(c, http.StatusOK, true, "Course deleted", nil)
}

// MentorStats reports per-course student progress for the calling mentor.
func (h *Handler) MentorStats(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	stats, err := MentorStats(h.db.WithContext(c.Request.Context()), usr.ID)
	if err != nil {
		h.respondError(c, err, "failed to load mentor stats")
		return
	}

	response.Success(c, http.StatusOK, stats, "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrCourseNotFound):
		status = http.StatusNotFound
		message = "Course not found."
	case errors.Is(err, ErrTitleRequired):
		status = http.StatusBadRequest
		message = "Course title is required."
	case errors.Is(err, ErrNotCourseOwner):
		status = http.StatusForbidden
		message = "You do not own this course."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
