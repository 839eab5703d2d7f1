package auth

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/features/user"
	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/email"
	"github.com/codearc/codearc-server/pkg/response"
	"github.com/codearc/codearc-server/pkg/types"
)

// Handler processes authentication HTTP requests.
type Handler struct {
	db            *gorm.DB
	logger        *slog.Logger
	mailer        *email.Client
	accessSecret  string
	refreshSecret string
}

// NewHandler constructs an auth handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger, mailer *email.Client, accessSecret, refreshSecret string) *Handler {
	return &Handler{
		db:            db,
		logger:        logger,
		mailer:        mailer,
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
	}
}

// Register creates a new student or mentor account.
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid registration payload", err)
		return
	}

	usr, err := Register(h.db.WithContext(c.Request.Context()), RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     types.Role(req.Role),
	})
	if err != nil {
		h.respondError(c, err, "failed to register")
		return
	}

	if h.mailer != nil {
		go func() {
			if err := h.mailer.SendWelcome(usr.Email, usr.Name); err != nil {
				h.logger.Warn("welcome email failed", "user_id", usr.ID, "error", err)
			}
		}()
	}

	response.Created(c, usr, "Registration successful")
}

// Login verifies credentials and returns the user with a token pair.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid login payload", err)
		return
	}

	session, err := Login(h.db.WithContext(c.Request.Context()), req.Email, req.Password, h.accessSecret, h.refreshSecret)
	if err != nil {
		h.respondError(c, err, "failed to login")
		return
	}

	response.Success(c, http.StatusOK, session, "Login successful", nil)
}

// Refresh exchanges a refresh token for a new token pair.
func (h *Handler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "refresh token is required", err)
		return
	}

	session, err := Refresh(h.db.WithContext(c.Request.Context()), req.RefreshToken, h.accessSecret, h.refreshSecret)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Invalid refresh token", err)
		return
	}

	response.Success(c, http.StatusOK, session, "", nil)
}

// ChangePassword updates the authenticated user's password.
func (h *Handler) ChangePassword(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid password payload", err)
		return
	}

	err := user.UpdatePassword(h.db.WithContext(c.Request.Context()), usr.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		h.respondError(c, err, "failed to change password")
		return
	}

	response.Success(c, http.StatusOK, true, "Password updated", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid email or password."
	case errors.Is(err, ErrMentorNotApproved):
		status = http.StatusForbidden
		message = "Your mentor account is pending approval."
	case errors.Is(err, ErrInvalidRole):
		status = http.StatusBadRequest
		message = "Role must be student or mentor."
	case errors.Is(err, user.ErrEmailTaken):
		status = http.StatusConflict
		message = "Email is already registered."
	case errors.Is(err, user.ErrPasswordLength):
		status = http.StatusBadRequest
		message = "Password must be at least 8 characters."
	case errors.Is(err, user.ErrWrongPassword):
		status = http.StatusBadRequest
		message = "Current password is incorrect."
	case errors.Is(err, user.ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
