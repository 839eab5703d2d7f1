package admin

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/features/user"
	"github.com/codearc/codearc-server/pkg/types"
)

// PlatformStats is the admin overview snapshot.
type PlatformStats struct {
	Students        int64     `json:"students"`
	Mentors         int64     `json:"mentors"`
	Admins          int64     `json:"admins"`
	Courses         int64     `json:"courses"`
	Enrollments     int64     `json:"enrollments"`
	FullCompletions int64     `json:"fullCompletions"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// CollectStats computes the platform overview with aggregate queries.
func CollectStats(db *gorm.DB) (PlatformStats, error) {
	stats := PlatformStats{GeneratedAt: time.Now().UTC()}

	type roleCount struct {
		Role  types.Role
		Count int64
	}
	var roleCounts []roleCount
	err := db.Table("users").
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&roleCounts).Error
	if err != nil {
		return stats, err
	}
	for _, rc := range roleCounts {
		switch rc.Role {
		case types.RoleStudent:
			stats.Students = rc.Count
		case types.RoleMentor:
			stats.Mentors = rc.Count
		case types.RoleAdmin:
			stats.Admins = rc.Count
		}
	}

	if err := db.Table("courses").Count(&stats.Courses).Error; err != nil {
		return stats, err
	}

	if err := db.Table("assignments").Count(&stats.Enrollments).Error; err != nil {
		return stats, err
	}

	// A full completion is one (student, course) pair where the completed
	// row count matches the course's chapter count.
	err = db.Raw(`
		SELECT COUNT(*) FROM (
			SELECT p.student_id, p.course_id
			FROM progresses p
			WHERE p.is_completed
			GROUP BY p.student_id, p.course_id
			HAVING COUNT(*) = (
				SELECT COUNT(*) FROM chapters c WHERE c.course_id = p.course_id
			)
			AND COUNT(*) > 0
		) AS done
	`).Scan(&stats.FullCompletions).Error
	if err != nil {
		return stats, err
	}

	return stats, nil
}

// ListUsers returns every account, newest first.
func ListUsers(db *gorm.DB) ([]user.User, error) {
	var users []user.User
	err := db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// SetMentorApproval flips a mentor's approval flag.
func SetMentorApproval(db *gorm.DB, mentorID uuid.UUID, approved bool) (user.User, error) {
	usr, err := user.GetByID(db, mentorID)
	if err != nil {
		return usr, err
	}

	if usr.Role != types.RoleMentor {
		return usr, user.ErrInvalidRole
	}

	if err := db.Model(&user.User{}).Where("id = ?", mentorID).Update("is_approved", approved).Error; err != nil {
		return usr, err
	}

	usr.IsApproved = approved
	return usr, nil
}

// DeleteUser removes an account and everything attached to it. Callers
// must have rejected self-deletion beforehand; the cascade runs in one
// transaction.
func DeleteUser(db *gorm.DB, targetID uuid.UUID) error {
	target, err := user.GetByID(db, targetID)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if target.Role == types.RoleMentor {
			var courseIDs []uuid.UUID
			if err := tx.Table("courses").Where("mentor_id = ?", targetID).Pluck("id", &courseIDs).Error; err != nil {
				return err
			}
			for _, courseID := range courseIDs {
				if err := tx.Exec("DELETE FROM progresses WHERE course_id = ?", courseID).Error; err != nil {
					return err
				}
				if err := tx.Exec("DELETE FROM assignments WHERE course_id = ?", courseID).Error; err != nil {
					return err
				}
				if err := tx.Exec("DELETE FROM chapters WHERE course_id = ?", courseID).Error; err != nil {
					return err
				}
			}
			if err := tx.Exec("DELETE FROM courses WHERE mentor_id = ?", targetID).Error; err != nil {
				return err
			}
		}

		if err := tx.Exec("DELETE FROM progresses WHERE student_id = ?", targetID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM assignments WHERE student_id = ?", targetID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM notifications WHERE user_id = ?", targetID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM messages WHERE sender_id = ? OR receiver_id = ?", targetID, targetID).Error; err != nil {
			return err
		}

		return tx.Exec("DELETE FROM users WHERE id = ?", targetID).Error
	})
}
