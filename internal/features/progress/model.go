package progress

import (
	"time"

	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/codearc/codearc-server/internal/features/chapter"
	"github.com/codearc/codearc-server/internal/features/course"
	"github.com/codearc/codearc-server/internal/features/enrollment"
	"github.com/codearc/codearc-server/internal/features/notification"
	"github.com/codearc/codearc-server/internal/features/user"
	"github.com/codearc/codearc-server/pkg/metrics"
	"github.com/codearc/codearc-server/pkg/types"
)

// Progress records one student finishing one chapter. The unique index keeps
// the record single no matter how many times completion is requested.
type Progress struct {
	types.BaseModel

	StudentID   uuid.UUID  `gorm:"type:uuid;not null;column:student_id;uniqueIndex:idx_student_chapter,priority:1" json:"studentId"`
	ChapterID   uuid.UUID  `gorm:"type:uuid;not null;column:chapter_id;uniqueIndex:idx_student_chapter,priority:2" json:"chapterId"`
	CourseID    uuid.UUID  `gorm:"type:uuid;not null;column:course_id;index" json:"courseId"`
	IsCompleted bool       `gorm:"not null;default:false;column:is_completed" json:"isCompleted"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completedAt,omitempty"`
}

// TableName overrides the default table name.
func (Progress) TableName() string { return "progresses" }

// CompletionEvent is emitted when a chapter completion brings a student to
// 100% of a course.
type CompletionEvent struct {
	StudentID   uuid.UUID
	CourseID    uuid.UUID
	CompletedAt time.Time
}

// CourseProgress is a student's standing in one course.
type CourseProgress struct {
	CourseID  uuid.UUID `json:"courseId"`
	Completed int64     `json:"completed"`
	Total     int64     `json:"total"`
	Percent   int       `json:"percent"`
}

// IsComplete reports whether every chapter is done. The count must match
// exactly and empty courses never complete.
func (p CourseProgress) IsComplete() bool {
	return p.Total > 0 && p.Completed == p.Total
}

// CompleteResult reports what a complete-chapter call did.
type CompleteResult struct {
	AlreadyCompleted bool             `json:"alreadyCompleted"`
	CourseCompleted  bool             `json:"courseCompleted"`
	Progress         CourseProgress   `json:"progress"`
	Event            *CompletionEvent `json:"-"`
}

// CompleteChapter marks a chapter done for a student. The chapter's
// predecessor must already be completed; re-completing is a no-op. When this
// write is the one that brings the course to 100%, the returned result
// carries a completion event, emitted exactly once across concurrent calls.
func CompleteChapter(db *gorm.DB, studentID, chapterID uuid.UUID) (CompleteResult, error) {
	ch, err := chapter.Get(db, chapterID)
	if err != nil {
		return CompleteResult{}, err
	}

	enrolled, err := enrollment.IsEnrolled(db, ch.CourseID, studentID)
	if err != nil {
		return CompleteResult{}, err
	}
	if !enrolled {
		return CompleteResult{}, ErrNotEnrolled
	}

	chapters, err := chapter.ListByCourse(db, ch.CourseID)
	if err != nil {
		return CompleteResult{}, err
	}
	chapter.SortChapters(chapters)

	idx := -1
	for i, candidate := range chapters {
		if candidate.ID == ch.ID {
			idx = i
			break
		}
	}
	if idx > 0 {
		var done int64
		err := db.Model(&Progress{}).
			Where("student_id = ? AND chapter_id = ? AND is_completed = ?", studentID, chapters[idx-1].ID, true).
			Count(&done).Error
		if err != nil {
			return CompleteResult{}, err
		}
		if done == 0 {
			return CompleteResult{}, ErrSequenceViolation
		}
	}

	now := time.Now().UTC()
	changed := false

	err = db.Transaction(func(tx *gorm.DB) error {
		update := tx.Model(&Progress{}).
			Where("student_id = ? AND chapter_id = ? AND is_completed = ?", studentID, chapterID, false).
			Updates(map[string]interface{}{"is_completed": true, "completed_at": now})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected > 0 {
			changed = true
			return nil
		}

		row := Progress{
			StudentID:   studentID,
			ChapterID:   chapterID,
			CourseID:    ch.CourseID,
			IsCompleted: true,
			CompletedAt: &now,
		}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "chapter_id"}},
			DoNothing: true,
		}).Create(&row)
		if insert.Error != nil {
			return insert.Error
		}
		changed = insert.RowsAffected > 0
		return nil
	})
	if err != nil {
		return CompleteResult{}, err
	}

	standing, err := Standing(db, studentID, ch.CourseID)
	if err != nil {
		return CompleteResult{}, err
	}

	result := CompleteResult{
		AlreadyCompleted: !changed,
		Progress:         standing,
	}

	// Only the state-changing write may fire the event, so two racing calls
	// still produce a single completion.
	if changed && standing.IsComplete() {
		result.CourseCompleted = true
		result.Event = &CompletionEvent{
			StudentID:   studentID,
			CourseID:    ch.CourseID,
			CompletedAt: now,
		}
	}

	return result, nil
}

// Standing returns a student's completed/total/percent for one course.
func Standing(db *gorm.DB, studentID, courseID uuid.UUID) (CourseProgress, error) {
	var total int64
	if err := db.Model(&chapter.Chapter{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return CourseProgress{}, err
	}

	var completed int64
	err := db.Model(&Progress{}).
		Where("student_id = ? AND course_id = ? AND is_completed = ?", studentID, courseID, true).
		Count(&completed).Error
	if err != nil {
		return CourseProgress{}, err
	}

	return CourseProgress{
		CourseID:  courseID,
		Completed: completed,
		Total:     total,
		Percent:   course.Percent(completed, total),
	}, nil
}

// IsCourseCompleted reports whether the student finished every chapter.
// Courses with no chapters are never complete.
func IsCourseCompleted(db *gorm.DB, studentID, courseID uuid.UUID) (bool, error) {
	standing, err := Standing(db, studentID, courseID)
	if err != nil {
		return false, err
	}
	return standing.IsComplete(), nil
}

// Dispatch fans a completion event out to everyone who cares about it.
// Delivery is best-effort; a failed notification never unwinds the
// completion itself.
func Dispatch(db *gorm.DB, logger *slog.Logger, event CompletionEvent) {
	metrics.CourseCompleted()

	crs, err := course.Get(db, event.CourseID)
	if err != nil {
		logger.Warn("completion fanout skipped, course lookup failed", "course_id", event.CourseID, "error", err)
		return
	}

	student, err := user.GetByID(db, event.StudentID)
	if err != nil {
		logger.Warn("completion fanout skipped, student lookup failed", "student_id", event.StudentID, "error", err)
		return
	}

	notification.SendToRole(db, logger, types.RoleAdmin,
		"Course Completion",
		student.Name+" has completed the course \""+crs.Title+"\".",
		types.NotificationInfo)

	notification.SendToUser(db, logger, student.ID,
		"Course Completed",
		"Congratulations! You have completed \""+crs.Title+"\" and your certificate is ready to download.",
		types.NotificationSuccess)

	notification.SendToUser(db, logger, crs.MentorID,
		"Student Completed",
		student.Name+" completed your course \""+crs.Title+"\".",
		types.NotificationInfo)
}
