package enrollment

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/features/course"
	"github.com/codearc/codearc-server/internal/features/notification"
	"github.com/codearc/codearc-server/internal/features/user"
	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/response"
	"github.com/codearc/codearc-server/pkg/types"
)

// Handler processes enrollment HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs an enrollment handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Enroll signs the calling student up for a course and tells the mentor.
func (h *Handler) Enroll(c *gin.Context) {
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
		h.respondError(c, err, "failed to enroll")
		return
	}

	assignment, err := Enroll(db, courseID, usr.ID)
	if err != nil {
		h.respondError(c, err, "failed to enroll")
		return
	}

	notification.SendToUser(h.db, h.logger, crs.MentorID,
		"New Enrollment",
		usr.Name+" enrolled in your course \""+crs.Title+"\".",
		types.NotificationInfo)

	response.Created(c, assignment, "Enrolled successfully")
}

// Unenroll removes the calling student from a course and purges their
// progress in it.
func (h *Handler) Unenroll(c *gin.Context) {
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

	if err := Unenroll(h.db.WithContext(c.Request.Context()), courseID, usr.ID); err != nil {
		h.respondError(c, err, "failed to unenroll")
		return
	}

	response.Success(c, http.StatusOK, true, "Unenrolled successfully", nil)
}

// Assign enrolls a named student into a course the caller manages.
func (h *Handler) Assign(c *gin.Context) {
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
		StudentID uuid.UUID `json:"studentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.StudentID == uuid.Nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "studentId is required", err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	crs, err := course.RequireOwnership(db, courseID, usr.ID, usr.Role)
	if err != nil {
		h.respondError(c, err, "failed to assign student")
		return
	}

	student, err := user.GetByID(db, req.StudentID)
	if err != nil {
		h.respondError(c, err, "failed to assign student")
		return
	}
	if student.Role != types.RoleStudent {
		h.respondError(c, ErrNotAStudent, "failed to assign student")
		return
	}

	assignment, err := Enroll(db, courseID, student.ID)
	if err != nil {
		h.respondError(c, err, "failed to assign student")
		return
	}

	notification.SendToUser(h.db, h.logger, student.ID,
		"New Enrollment",
		"You have been enrolled in \""+crs.Title+"\".",
		types.NotificationSuccess)

	response.Created(c, assignment, "Student assigned")
}

// MyEnrollments lists the calling student's assignments.
func (h *Handler) MyEnrollments(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	assignments, err := ListByStudent(h.db.WithContext(c.Request.Context()), usr.ID)
	if err != nil {
		h.respondError(c, err, "failed to list enrollments")
		return
	}

	response.Success(c, http.StatusOK, assignments, "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, course.ErrCourseNotFound):
		response.ErrorWithLog(h.logger, c, http.StatusNotFound, "Course not found.", err)
	case errors.Is(err, course.ErrNotCourseOwner):
		response.ErrorWithLog(h.logger, c, http.StatusForbidden, "You do not own this course.", err)
	case errors.Is(err, user.ErrUserNotFound):
		response.ErrorWithLog(h.logger, c, http.StatusNotFound, "Student not found.", err)
	default:
		response.AppError(h.logger, c, err, fallback)
	}
}
