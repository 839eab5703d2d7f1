package progress

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/features/chapter"
	"github.com/codearc/codearc-server/internal/features/course"
	"github.com/codearc/codearc-server/internal/features/enrollment"
)

const (
	recommendedLimit = 4
	recentLimit      = 5
)

// Summary is the student dashboard rollup. Certificates mirrors Completed:
// every fully completed course carries a certificate.
type Summary struct {
	Enrolled     int `json:"enrolled"`
	Completed    int `json:"completed"`
	InProgress   int `json:"inProgress"`
	Certificates int `json:"certificates"`
}

// RecentCourse is one row of the recent-activity list.
type RecentCourse struct {
	Course     course.Course `json:"course"`
	EnrolledAt time.Time     `json:"enrolledAt"`
	Percent    int           `json:"percent"`
}

// Dashboard combines the rollup, recommendations and recent activity.
type Dashboard struct {
	Summary     Summary         `json:"summary"`
	Recommended []course.Course `json:"recommended"`
	Recent      []RecentCourse  `json:"recent"`
}

// BuildDashboard assembles a student's dashboard with scoped aggregate
// queries rather than loading the whole catalog.
func BuildDashboard(db *gorm.DB, studentID uuid.UUID) (Dashboard, error) {
	assignments, err := enrollment.ListByStudent(db, studentID)
	if err != nil {
		return Dashboard{}, err
	}

	completedSet, err := completedCourseSet(db, studentID)
	if err != nil {
		return Dashboard{}, err
	}

	summary := Summary{Enrolled: len(assignments)}
	for _, a := range assignments {
		if completedSet[a.CourseID] {
			summary.Completed++
		}
	}
	summary.InProgress = summary.Enrolled - summary.Completed
	summary.Certificates = summary.Completed

	recommended, err := recommendedCourses(db, studentID)
	if err != nil {
		return Dashboard{}, err
	}

	recent := make([]RecentCourse, 0, recentLimit)
	for _, a := range assignments {
		if len(recent) == recentLimit {
			break
		}

		var crs course.Course
		if a.Course != nil {
			crs = *a.Course
		}

		standing, err := Standing(db, studentID, a.CourseID)
		if err != nil {
			return Dashboard{}, err
		}

		recent = append(recent, RecentCourse{
			Course:     crs,
			EnrolledAt: a.CreatedAt,
			Percent:    standing.Percent,
		})
	}

	return Dashboard{
		Summary:     summary,
		Recommended: recommended,
		Recent:      recent,
	}, nil
}

// completedCourseSet returns the courses where the student has completed
// every chapter. Zero-chapter courses never count.
func completedCourseSet(db *gorm.DB, studentID uuid.UUID) (map[uuid.UUID]bool, error) {
	type row struct {
		CourseID  uuid.UUID
		Completed int64
	}
	var rows []row
	err := db.Model(&Progress{}).
		Select("course_id, COUNT(*) AS completed").
		Where("student_id = ? AND is_completed = ?", studentID, true).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	completed := map[uuid.UUID]bool{}
	for _, r := range rows {
		var total int64
		if err := db.Model(&chapter.Chapter{}).Where("course_id = ?", r.CourseID).Count(&total).Error; err != nil {
			return nil, err
		}
		if total > 0 && r.Completed == total {
			completed[r.CourseID] = true
		}
	}
	return completed, nil
}

// recommendedCourses picks courses the student has not joined yet, in a
// deterministic order so the same catalog always yields the same picks.
func recommendedCourses(db *gorm.DB, studentID uuid.UUID) ([]course.Course, error) {
	var courses []course.Course
	err := db.Preload("Mentor").
		Where("id NOT IN (?)",
			db.Table("assignments").Select("course_id").Where("student_id = ?", studentID)).
		Order("created_at ASC, id ASC").
		Limit(recommendedLimit).
		Find(&courses).Error
	return courses, err
}
