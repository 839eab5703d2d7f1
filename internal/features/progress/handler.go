package progress

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/features/chapter"
	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/response"
)

// Handler processes progress HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a progress handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// CompleteChapter marks a chapter done for the calling student.
func (h *Handler) CompleteChapter(c *gin.Context) {
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

	result, err := CompleteChapter(h.db.WithContext(c.Request.Context()), usr.ID, chapterID)
	if err != nil {
		h.respondError(c, err, "failed to complete chapter")
		return
	}

	if result.Event != nil {
		// Fanout runs on the base handle so a cancelled request context
		// cannot drop the notifications.
		Dispatch(h.db, h.logger, *result.Event)
	}

	message := "Chapter completed"
	if result.AlreadyCompleted {
		message = "Chapter was already completed"
	}

	response.Success(c, http.StatusOK, result, message, nil)
}

// CourseStanding returns the caller's completed/total/percent for a course.
func (h *Handler) CourseStanding(c *gin.Context) {
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

	standing, err := Standing(h.db.WithContext(c.Request.Context()), usr.ID, courseID)
	if err != nil {
		h.respondError(c, err, "failed to load progress")
		return
	}

	response.Success(c, http.StatusOK, standing, "", nil)
}

// Dashboard returns the calling student's rollup, recommendations and
// recent activity.
func (h *Handler) Dashboard(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	dashboard, err := BuildDashboard(h.db.WithContext(c.Request.Context()), usr.ID)
	if err != nil {
		h.respondError(c, err, "failed to build dashboard")
		return
	}

	response.Success(c, http.StatusOK, dashboard, "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, chapter.ErrChapterNotFound) {
		response.ErrorWithLog(h.logger, c, http.StatusNotFound, "Chapter not found.", err)
		return
	}

	response.AppError(h.logger, c, err, fallback)
}
