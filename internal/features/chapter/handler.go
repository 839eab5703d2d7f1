package chapter

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/features/course"
	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/response"
)

// Handler processes chapter HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a chapter handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Create adds a chapter to a course owned by the calling mentor.
func (h *Handler) Create(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		VideoURL    string `json:"videoUrl"`
		Sequence    *int   `json:"sequence"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid chapter payload", err)
		return
	}

	db := h.db.WithContext(c.Request.Context())
	if _, err := course.RequireOwnership(db, courseID, usr.ID, usr.Role); err != nil {
		h.respondError(c, err, "failed to add chapter")
		return
	}

	ch, err := Create(db, CreateInput{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		Sequence:    req.Sequence,
	})
	if err != nil {
		h.respondError(c, err, "failed to add chapter")
		return
	}

	response.Created(c, ch, "Chapter added")
}

// Update modifies a chapter on a course owned by the calling mentor.
func (h *Handler) Update(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	chapterID, err := uuid.Parse(c.Param("chapterId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid chapter id", err)
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		VideoURL    *string `json:"videoUrl"`
		Sequence    *int    `json:"sequence"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid chapter payload", err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	ch, err := Get(db, chapterID)
	if err != nil {
		h.respondError(c, err, "failed to update chapter")
		return
	}

	if _, err := course.RequireOwnership(db, ch.CourseID, usr.ID, usr.Role); err != nil {
		h.respondError(c, err, "failed to update chapter")
		return
	}

	updated, err := Update(db, chapterID, UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		Sequence:    req.Sequence,
	})
	if err != nil {
		h.respondError(c, err, "failed to update chapter")
		return
	}

	response.Success(c, http.StatusOK, updated, "Chapter updated", nil)
}

// Delete removes a chapter from a course owned by the calling mentor.
func (h *Handler) Delete(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	chapterID, err := uuid.Parse(c.Param("chapterId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid chapter id", err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	ch, err := Get(db, chapterID)
	if err != nil {
		h.respondError(c, err, "failed to delete chapter")
		return
	}

	if _, err := course.RequireOwnership(db, ch.CourseID, usr.ID, usr.Role); err != nil {
		h.respondError(c, err, "failed to delete chapter")
		return
	}

	if err := Delete(db, chapterID); err != nil {
		h.respondError(c, err, "failed to delete chapter")
		return
	}

	response.Success(c, http.StatusOK, true, "Chapter deleted", nil)
}

// CourseContent returns a course's chapters with lock state for the viewer.
func (h *Handler) CourseContent(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	if _, err := course.Get(db, courseID); err != nil {
		h.respondError(c, err, "failed to load course content")
		return
	}

	views, err := CourseContent(db, courseID, usr.ID, usr.Role)
	if err != nil {
		h.respondError(c, err, "failed to load course content")
		return
	}

	response.Success(c, http.StatusOK, views, "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrChapterNotFound):
		status = http.StatusNotFound
		message = "Chapter not found."
	case errors.Is(err, course.ErrCourseNotFound):
		status = http.StatusNotFound
		message = "Course not found."
	case errors.Is(err, course.ErrNotCourseOwner):
		status = http.StatusForbidden
		message = "You do not own this course."
	case errors.Is(err, ErrTitleRequired):
		status = http.StatusBadRequest
		message = "Chapter title is required."
	case errors.Is(err, ErrVideoRequired):
		status = http.StatusBadRequest
		message = "Chapter video url is required."
	case errors.Is(err, ErrNotEnrolled):
		status = http.StatusForbidden
		message = "You are not enrolled in this course."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
