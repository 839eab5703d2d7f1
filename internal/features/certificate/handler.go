package certificate

import (
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/features/course"
	"github.com/codearc/codearc-server/internal/features/progress"
	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/response"
)

// Handler processes certificate HTTP requests.
type Handler struct {
	db       *gorm.DB
	logger   *slog.Logger
	renderer Renderer
}

// NewHandler constructs a certificate handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger, renderer Renderer) *Handler {
	return &Handler{db: db, logger: logger, renderer: renderer}
}

// Download renders the caller's certificate for a fully completed course and
// streams it as the response body. Renderer failures become a 502 only
// while nothing has been written yet; mid-stream failures can only be
// logged.
func (h *Handler) Download(c *gin.Context) {
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

	crs, err := course.Get(db, courseID)
	if err != nil {
		h.respondError(c, err, "failed to load certificate")
		return
	}

	done, err := progress.IsCourseCompleted(db, usr.ID, courseID)
	if err != nil {
		h.respondError(c, err, "failed to load certificate")
		return
	}
	if !done {
		h.respondError(c, ErrNotEligible, "failed to load certificate")
		return
	}

	completedAt, err := latestCompletion(db, usr.ID, courseID)
	if err != nil {
		h.respondError(c, err, "failed to load certificate")
		return
	}

	mentorName := ""
	if crs.Mentor != nil {
		mentorName = crs.Mentor.Name
	}

	payload := Payload{
		StudentName:    usr.Name,
		CourseTitle:    crs.Title,
		MentorName:     mentorName,
		CompletionDate: completedAt,
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="certificate.pdf"`)

	if err := h.renderer.Render(c.Request.Context(), payload, &stampedWriter{c: c}); err != nil {
		if !c.Writer.Written() {
			response.ErrorWithLog(h.logger, c, http.StatusBadGateway, "Certificate rendering failed.", err)
			return
		}
		h.logger.Error("certificate stream aborted", "student_id", usr.ID, "course_id", courseID, "error", err)
	}
}

// stampedWriter defers the status line until the first byte arrives from
// the renderer, keeping the error path open until then.
type stampedWriter struct {
	c       *gin.Context
	started bool
}

func (w *stampedWriter) Write(p []byte) (int, error) {
	if !w.started {
		w.started = true
		w.c.Status(http.StatusOK)
	}
	return w.c.Writer.Write(p)
}

// latestCompletion finds when the student finished the last chapter.
func latestCompletion(db *gorm.DB, studentID, courseID uuid.UUID) (time.Time, error) {
	var completedAt *time.Time
	err := db.Table("progresses").
		Select("MAX(completed_at)").
		Where("student_id = ? AND course_id = ? AND is_completed = ?", studentID, courseID, true).
		Scan(&completedAt).Error
	if err != nil {
		return time.Time{}, err
	}
	if completedAt == nil {
		return time.Now().UTC(), nil
	}
	return *completedAt, nil
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, course.ErrCourseNotFound):
		status = http.StatusNotFound
		message = "Course not found."
	case errors.Is(err, ErrNotEligible):
		status = http.StatusForbidden
		message = "Complete the course to receive your certificate."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
