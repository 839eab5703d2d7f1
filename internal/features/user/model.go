package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/pkg/types"
)

// User represents a platform account. Mentors start unapproved and cannot
// sign in until an admin approves them.
type User struct {
	types.BaseModel

	Name       string     `gorm:"type:varchar(255);not null" json:"name"`
	Email      string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password   string     `gorm:"type:varchar(255);not null" json:"-"`
	Role       types.Role `gorm:"type:varchar(20);not null;index" json:"role"`
	IsApproved bool       `gorm:"not null;default:false;column:is_approved" json:"isApproved"`
}

// TableName overrides the default table name.
func (User) TableName() string { return "users" }

// StudentView is the students listing row. Enrollment flags are populated
// only when the listing is scoped to a course.
type StudentView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	IsEnrolled  bool      `json:"isEnrolled"`
	IsCompleted bool      `json:"isCompleted"`
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(plain string) (string, error) {
	if len(plain) < 8 {
		return "", ErrPasswordLength
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func CheckPassword(hashed, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// GetByID fetches a user by primary key.
func GetByID(db *gorm.DB, id uuid.UUID) (User, error) {
	var usr User
	if err := db.First(&usr, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usr, ErrUserNotFound
		}
		return usr, err
	}
	return usr, nil
}

// GetByEmail fetches a user by email, case-insensitively.
func GetByEmail(db *gorm.DB, email string) (User, error) {
	var usr User
	err := db.First(&usr, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usr, ErrUserNotFound
		}
		return usr, err
	}
	return usr, nil
}

// Create inserts a new user. Email uniqueness is enforced by the database;
// a duplicate surfaces as ErrEmailTaken.
func Create(db *gorm.DB, usr *User) error {
	usr.Email = strings.ToLower(strings.TrimSpace(usr.Email))

	var count int64
	if err := db.Model(&User{}).Where("email = ?", usr.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}

	if err := db.Create(usr).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// ListByRole returns all users with the given role.
func ListByRole(db *gorm.DB, role types.Role) ([]User, error) {
	var users []User
	err := db.Where("role = ?", role).Order("created_at ASC").Find(&users).Error
	return users, err
}

// IDsByRole returns the ids of all users with the given role. Used by
// notification fanout, which resolves role membership at send time.
func IDsByRole(db *gorm.DB, role types.Role) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&User{}).Where("role = ?", role).Pluck("id", &ids).Error
	return ids, err
}

// ListStudents returns every student. When courseID is set, each row carries
// whether the student is enrolled in that course and whether they completed
// every one of its chapters.
func ListStudents(db *gorm.DB, courseID *uuid.UUID) ([]StudentView, error) {
	var students []User
	if err := db.Where("role = ?", types.RoleStudent).Order("created_at ASC").Find(&students).Error; err != nil {
		return nil, err
	}

	views := make([]StudentView, 0, len(students))
	for _, s := range students {
		views = append(views, StudentView{ID: s.ID, Name: s.Name, Email: s.Email})
	}

	if courseID == nil || len(views) == 0 {
		return views, nil
	}

	var enrolledIDs []uuid.UUID
	err := db.Table("assignments").
		Where("course_id = ?", *courseID).
		Pluck("student_id", &enrolledIDs).Error
	if err != nil {
		return nil, err
	}
	enrolled := make(map[uuid.UUID]bool, len(enrolledIDs))
	for _, id := range enrolledIDs {
		enrolled[id] = true
	}

	var totalChapters int64
	if err := db.Table("chapters").Where("course_id = ?", *courseID).Count(&totalChapters).Error; err != nil {
		return nil, err
	}

	completed := make(map[uuid.UUID]bool)
	if totalChapters > 0 {
		var completedIDs []uuid.UUID
		err := db.Table("progresses").
			Select("student_id").
			Where("course_id = ? AND is_completed = ?", *courseID, true).
			Group("student_id").
			Having("COUNT(*) = ?", totalChapters).
			Pluck("student_id", &completedIDs).Error
		if err != nil {
			return nil, err
		}
		for _, id := range completedIDs {
			completed[id] = true
		}
	}

	for i := range views {
		views[i].IsEnrolled = enrolled[views[i].ID]
		views[i].IsCompleted = completed[views[i].ID]
	}

	return views, nil
}

// UpdatePassword replaces a user's password hash after verifying the old one.
func UpdatePassword(db *gorm.DB, id uuid.UUID, oldPlain, newPlain string) error {
	usr, err := GetByID(db, id)
	if err != nil {
		return err
	}

	if err := CheckPassword(usr.Password, oldPlain); err != nil {
		return err
	}

	hashed, err := HashPassword(newPlain)
	if err != nil {
		return err
	}

	return db.Model(&User{}).Where("id = ?", id).Update("password", hashed).Error
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}
