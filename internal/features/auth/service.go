package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/features/user"
	"github.com/codearc/codearc-server/internal/utils/jwt"
	"github.com/codearc/codearc-server/pkg/types"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// RegisterInput carries a signup request. Admins are seeded, never
// self-registered.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     types.Role
}

// Session is the authenticated response payload.
type Session struct {
	User   user.User     `json:"user"`
	Tokens jwt.TokenPair `json:"tokens"`
}

// Register creates a student or mentor account. Mentors start unapproved.
func Register(db *gorm.DB, input RegisterInput) (user.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || strings.TrimSpace(input.Email) == "" {
		return user.User{}, errors.New("name and email are required")
	}

	if input.Role != types.RoleStudent && input.Role != types.RoleMentor {
		return user.User{}, ErrInvalidRole
	}

	hashed, err := user.HashPassword(input.Password)
	if err != nil {
		return user.User{}, err
	}

	usr := user.User{
		Name:       input.Name,
		Email:      input.Email,
		Password:   hashed,
		Role:       input.Role,
		IsApproved: input.Role == types.RoleStudent,
	}

	if err := user.Create(db, &usr); err != nil {
		return user.User{}, err
	}

	return usr, nil
}

// Login verifies credentials and issues a token pair. Unapproved mentors are
// rejected even with a correct password.
func Login(db *gorm.DB, email, password, accessSecret, refreshSecret string) (Session, error) {
	usr, err := user.GetByEmail(db, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	if err := user.CheckPassword(usr.Password, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	if usr.Role == types.RoleMentor && !usr.IsApproved {
		return Session{}, ErrMentorNotApproved
	}

	tokens, err := issueTokens(usr.ID, accessSecret, refreshSecret)
	if err != nil {
		return Session{}, err
	}

	return Session{User: usr, Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func Refresh(db *gorm.DB, refreshToken, accessSecret, refreshSecret string) (Session, error) {
	claims, err := jwt.Verify(refreshToken, refreshSecret)
	if err != nil {
		return Session{}, err
	}

	usr, err := user.GetByID(db, claims.UserID)
	if err != nil {
		return Session{}, err
	}

	if usr.Role == types.RoleMentor && !usr.IsApproved {
		return Session{}, ErrMentorNotApproved
	}

	tokens, err := issueTokens(usr.ID, accessSecret, refreshSecret)
	if err != nil {
		return Session{}, err
	}

	return Session{User: usr, Tokens: tokens}, nil
}

func issueTokens(userID uuid.UUID, accessSecret, refreshSecret string) (jwt.TokenPair, error) {
	access, err := jwt.Generate(userID, accessSecret, accessTokenTTL)
	if err != nil {
		return jwt.TokenPair{}, err
	}

	refresh, err := jwt.Generate(userID, refreshSecret, refreshTokenTTL)
	if err != nil {
		return jwt.TokenPair{}, err
	}

	return jwt.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
