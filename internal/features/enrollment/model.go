package enrollment

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/codearc/codearc-server/internal/features/course"
	"github.com/codearc/codearc-server/internal/features/user"
	"github.com/codearc/codearc-server/pkg/types"
)

// Assignment links a student to a course. The unique index makes double
// enrollment impossible regardless of request interleaving.
type Assignment struct {
	types.BaseModel

	CourseID  uuid.UUID `gorm:"type:uuid;not null;column:course_id;uniqueIndex:idx_course_student,priority:1" json:"courseId"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;column:student_id;uniqueIndex:idx_course_student,priority:2;index" json:"studentId"`

	Course  *course.Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Student *user.User     `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

// TableName overrides the default table name.
func (Assignment) TableName() string { return "assignments" }

// Enroll creates an assignment for a student. Returns ErrAlreadyEnrolled
// when an assignment already exists, whether it predated the call or raced
// in alongside it.
func Enroll(db *gorm.DB, courseID, studentID uuid.UUID) (Assignment, error) {
	if _, err := course.Get(db, courseID); err != nil {
		return Assignment{}, err
	}

	assignment := Assignment{CourseID: courseID, StudentID: studentID}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}, {Name: "student_id"}},
		DoNothing: true,
	}).Create(&assignment)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Assignment{}, ErrAlreadyEnrolled
		}
		return Assignment{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Assignment{}, ErrAlreadyEnrolled
	}

	return assignment, nil
}

// Unenroll removes the assignment and every progress row the student has in
// the course. Both deletes commit or neither does; progress in other courses
// is untouched.
func Unenroll(db *gorm.DB, courseID, studentID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&Assignment{}, "course_id = ? AND student_id = ?", courseID, studentID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotEnrolled
		}

		return tx.Exec(
			"DELETE FROM progresses WHERE course_id = ? AND student_id = ?",
			courseID, studentID,
		).Error
	})
}

// IsEnrolled reports whether the student has an assignment for the course.
func IsEnrolled(db *gorm.DB, courseID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&Assignment{}).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Count(&count).Error
	return count > 0, err
}

// ListByStudent returns a student's assignments, most recent first.
func ListByStudent(db *gorm.DB, studentID uuid.UUID) ([]Assignment, error) {
	var assignments []Assignment
	err := db.Preload("Course").Preload("Course.Mentor").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, err
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}
