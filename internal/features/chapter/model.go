package chapter

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/pkg/types"
)

// Chapter is one unit of course content. Sequence drives the linear unlock
// order for students.
type Chapter struct {
	types.BaseModel

	CourseID    uuid.UUID `gorm:"type:uuid;not null;column:course_id;index" json:"courseId"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	VideoURL    string    `gorm:"type:text;not null;column:video_url" json:"-"`
	Sequence    int       `gorm:"not null;default:0" json:"sequence"`
}

// TableName overrides the default table name.
func (Chapter) TableName() string { return "chapters" }

// View is a chapter as presented to a viewer. VideoURL is withheld while the
// chapter is locked.
type View struct {
	ID          uuid.UUID `json:"id"`
	CourseID    uuid.UUID `json:"courseId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Sequence    int       `json:"sequence"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	IsLocked    bool      `json:"isLocked"`
	IsCompleted bool      `json:"isCompleted"`
}

// SortChapters orders chapters by sequence, then creation time, then id, so
// duplicate sequence values still produce a stable linear order.
func SortChapters(chapters []Chapter) {
	sort.SliceStable(chapters, func(i, j int) bool {
		a, b := chapters[i], chapters[j]
		if a.Sequence != b.Sequence {
			return a.Sequence < b.Sequence
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}

// BuildViews derives per-chapter lock state for a viewer. Students see a
// strictly linear course: a chapter unlocks only once its predecessor is
// completed, and the first chapter is always open. Mentors and admins see
// everything unlocked. Locked chapters carry no video reference.
func BuildViews(chapters []Chapter, completed map[uuid.UUID]bool, role types.Role) []View {
	SortChapters(chapters)

	views := make([]View, 0, len(chapters))
	privileged := role == types.RoleMentor || role == types.RoleAdmin

	for i, ch := range chapters {
		locked := false
		if !privileged && i > 0 {
			locked = !completed[chapters[i-1].ID]
		}

		view := View{
			ID:          ch.ID,
			CourseID:    ch.CourseID,
			Title:       ch.Title,
			Description: ch.Description,
			Sequence:    ch.Sequence,
			IsLocked:    locked,
			IsCompleted: completed[ch.ID],
		}
		if !locked {
			view.VideoURL = ch.VideoURL
		}

		views = append(views, view)
	}

	return views
}

// ListByCourse returns a course's chapters in unlock order.
func ListByCourse(db *gorm.DB, courseID uuid.UUID) ([]Chapter, error) {
	var chapters []Chapter
	err := db.Where("course_id = ?", courseID).
		Order("sequence ASC, created_at ASC, id ASC").
		Find(&chapters).Error
	return chapters, err
}

// Get fetches a chapter by primary key.
func Get(db *gorm.DB, id uuid.UUID) (Chapter, error) {
	var ch Chapter
	if err := db.First(&ch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ch, ErrChapterNotFound
		}
		return ch, err
	}
	return ch, nil
}

// CreateInput carries data for adding a chapter.
type CreateInput struct {
	CourseID    uuid.UUID
	Title       string
	Description string
	VideoURL    string
	Sequence    *int
}

// Create appends a chapter to a course. When no sequence is given the
// chapter goes to the end.
func Create(db *gorm.DB, input CreateInput) (Chapter, error) {
	if input.Title == "" {
		return Chapter{}, ErrTitleRequired
	}
	if input.VideoURL == "" {
		return Chapter{}, ErrVideoRequired
	}

	seq := 0
	if input.Sequence != nil {
		seq = *input.Sequence
	} else {
		var maxSeq *int
		err := db.Model(&Chapter{}).
			Where("course_id = ?", input.CourseID).
			Select("MAX(sequence)").
			Scan(&maxSeq).Error
		if err != nil {
			return Chapter{}, err
		}
		if maxSeq != nil {
			seq = *maxSeq + 1
		}
	}

	ch := Chapter{
		CourseID:    input.CourseID,
		Title:       input.Title,
		Description: input.Description,
		VideoURL:    input.VideoURL,
		Sequence:    seq,
	}

	if err := db.Create(&ch).Error; err != nil {
		return Chapter{}, err
	}

	return ch, nil
}

// UpdateInput captures mutable chapter fields.
type UpdateInput struct {
	Title       *string
	Description *string
	VideoURL    *string
	Sequence    *int
}

// Update modifies an existing chapter.
func Update(db *gorm.DB, id uuid.UUID, input UpdateInput) (Chapter, error) {
	ch, err := Get(db, id)
	if err != nil {
		return ch, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return ch, ErrTitleRequired
		}
		ch.Title = *input.Title
	}
	if input.Description != nil {
		ch.Description = *input.Description
	}
	if input.VideoURL != nil {
		if *input.VideoURL == "" {
			return ch, ErrVideoRequired
		}
		ch.VideoURL = *input.VideoURL
	}
	if input.Sequence != nil {
		ch.Sequence = *input.Sequence
	}

	if err := db.Save(&ch).Error; err != nil {
		return ch, err
	}

	return ch, nil
}

// Delete removes a chapter together with any progress rows pointing at it.
func Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM progresses WHERE chapter_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&Chapter{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrChapterNotFound
		}
		return nil
	})
}

// CourseContent loads a course's chapters as the viewer sees them. Students
// must be enrolled; their completion set drives the locks.
func CourseContent(db *gorm.DB, courseID, viewerID uuid.UUID, role types.Role) ([]View, error) {
	chapters, err := ListByCourse(db, courseID)
	if err != nil {
		return nil, err
	}

	completed := map[uuid.UUID]bool{}
	if role == types.RoleStudent {
		var enrolled int64
		err := db.Table("assignments").
			Where("course_id = ? AND student_id = ?", courseID, viewerID).
			Count(&enrolled).Error
		if err != nil {
			return nil, err
		}
		if enrolled == 0 {
			return nil, ErrNotEnrolled
		}

		var completedIDs []uuid.UUID
		err = db.Table("progresses").
			Where("course_id = ? AND student_id = ? AND is_completed = ?", courseID, viewerID, true).
			Pluck("chapter_id", &completedIDs).Error
		if err != nil {
			return nil, err
		}
		for _, id := range completedIDs {
			completed[id] = true
		}
	}

	return BuildViews(chapters, completed, role), nil
}
