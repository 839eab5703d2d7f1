package course

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/features/user"
	"github.com/codearc/codearc-server/pkg/types"
)

// Course is a mentor-owned sequence of chapters.
type Course struct {
	types.BaseModel

	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    *string   `gorm:"type:text;column:image_url" json:"imageUrl,omitempty"`
	MentorID    uuid.UUID `gorm:"type:uuid;not null;column:mentor_id;index" json:"mentorId"`

	Mentor *user.User `gorm:"foreignKey:MentorID" json:"mentor,omitempty"`
}

// TableName overrides the default table name.
func (Course) TableName() string { return "courses" }

// View is a catalog row. Enrollment flags are only meaningful for students.
type View struct {
	Course
	IsEnrolled  bool `json:"isEnrolled"`
	IsCompleted bool `json:"isCompleted"`
}

// StudentStat is one enrolled student's standing in a mentor stats row.
type StudentStat struct {
	StudentID uuid.UUID `json:"studentId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Percent   int       `json:"percent"`
}

// Stats is the mentor dashboard entry for one course.
type Stats struct {
	CourseID     uuid.UUID     `json:"courseId"`
	Title        string        `json:"title"`
	StudentCount int           `json:"studentCount"`
	Students     []StudentStat `json:"students"`
}

// CreateInput carries data for creating a new course.
type CreateInput struct {
	Title       string
	Description string
	ImageURL    *string
	MentorID    uuid.UUID
}

// Create inserts a new course.
func Create(db *gorm.DB, input CreateInput) (Course, error) {
	if input.Title == "" {
		return Course{}, ErrTitleRequired
	}

	crs := Course{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		MentorID:    input.MentorID,
	}

	if err := db.Create(&crs).Error; err != nil {
		return Course{}, err
	}

	return crs, nil
}

// Get fetches a course with its mentor.
func Get(db *gorm.DB, id uuid.UUID) (Course, error) {
	var crs Course
	err := db.Preload("Mentor").First(&crs, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return crs, ErrCourseNotFound
		}
		return crs, err
	}
	return crs, nil
}

// RequireOwnership fetches a course and verifies the caller may manage it.
// Admins bypass the mentor check.
func RequireOwnership(db *gorm.DB, courseID, callerID uuid.UUID, callerRole types.Role) (Course, error) {
	crs, err := Get(db, courseID)
	if err != nil {
		return crs, err
	}

	if callerRole != types.RoleAdmin && crs.MentorID != callerID {
		return crs, ErrNotCourseOwner
	}

	return crs, nil
}

// ListForRole returns the catalog visible to a caller. Students see every
// course with their own enrollment flags; mentors see only their own courses;
// admins see everything.
func ListForRole(db *gorm.DB, callerID uuid.UUID, role types.Role) ([]View, error) {
	query := db.Model(&Course{}).Preload("Mentor")
	if role == types.RoleMentor {
		query = query.Where("mentor_id = ?", callerID)
	}

	var courses []Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}

	views := make([]View, 0, len(courses))
	for _, crs := range courses {
		views = append(views, View{Course: crs})
	}

	if role != types.RoleStudent || len(views) == 0 {
		return views, nil
	}

	var enrolledIDs []uuid.UUID
	err := db.Table("assignments").
		Where("student_id = ?", callerID).
		Pluck("course_id", &enrolledIDs).Error
	if err != nil {
		return nil, err
	}
	enrolled := make(map[uuid.UUID]bool, len(enrolledIDs))
	for _, id := range enrolledIDs {
		enrolled[id] = true
	}

	completed, err := completedCourseIDs(db, callerID)
	if err != nil {
		return nil, err
	}

	for i := range views {
		views[i].IsEnrolled = enrolled[views[i].ID]
		views[i].IsCompleted = completed[views[i].ID]
	}

	return views, nil
}

// completedCourseIDs returns the set of courses where the student has a
// completed row for every chapter. Courses without chapters never qualify.
func completedCourseIDs(db *gorm.DB, studentID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := db.Table("progresses").
		Select("progresses.course_id").
		Where("progresses.student_id = ? AND progresses.is_completed = ?", studentID, true).
		Group("progresses.course_id").
		Having("COUNT(*) = (SELECT COUNT(*) FROM chapters WHERE chapters.course_id = progresses.course_id)").
		Pluck("course_id", &ids).Error
	if err != nil {
		return nil, err
	}

	completed := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		completed[id] = true
	}
	return completed, nil
}

// Delete removes a course with everything hanging off it in one transaction.
func Delete(db *gorm.DB, courseID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM progresses WHERE course_id = ?", courseID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM assignments WHERE course_id = ?", courseID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM chapters WHERE course_id = ?", courseID).Error; err != nil {
			return err
		}

		result := tx.Delete(&Course{}, "id = ?", courseID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCourseNotFound
		}
		return nil
	})
}

// MentorStats reports every course the mentor owns with each enrolled
// student's completion percentage.
func MentorStats(db *gorm.DB, mentorID uuid.UUID) ([]Stats, error) {
	var courses []Course
	if err := db.Where("mentor_id = ?", mentorID).Order("created_at ASC").Find(&courses).Error; err != nil {
		return nil, err
	}

	stats := make([]Stats, 0, len(courses))
	for _, crs := range courses {
		var totalChapters int64
		if err := db.Table("chapters").Where("course_id = ?", crs.ID).Count(&totalChapters).Error; err != nil {
			return nil, err
		}

		type row struct {
			StudentID uuid.UUID
			Name      string
			Email     string
			Completed int64
		}
		var rows []row
		err := db.Table("assignments").
			Select(`assignments.student_id,
				users.name,
				users.email,
				COUNT(progresses.id) FILTER (WHERE progresses.is_completed) AS completed`).
			Joins("JOIN users ON users.id = assignments.student_id").
			Joins("LEFT JOIN progresses ON progresses.student_id = assignments.student_id AND progresses.course_id = assignments.course_id").
			Where("assignments.course_id = ?", crs.ID).
			Group("assignments.student_id, users.name, users.email").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}

		entry := Stats{CourseID: crs.ID, Title: crs.Title, StudentCount: len(rows), Students: make([]StudentStat, 0, len(rows))}
		for _, r := range rows {
			entry.Students = append(entry.Students, StudentStat{
				StudentID: r.StudentID,
				Name:      r.Name,
				Email:     r.Email,
				Percent:   Percent(r.Completed, totalChapters),
			})
		}
		stats = append(stats, entry)
	}

	return stats, nil
}

// Percent computes a rounded completion percentage. Zero-chapter courses are
// always 0%.
func Percent(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
