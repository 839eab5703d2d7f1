package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/pkg/apperrors"
)

// Envelope is the standard API response shape.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Code       string      `json:"code,omitempty"`
	Pagination interface{} `json:"pagination,omitempty"`
}

// Success writes a success response with optional message, data and pagination.
func Success(c *gin.Context, status int, data interface{}, message string, pagination interface{}) {
	c.JSON(status, Envelope{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
	})
}

// Created is a convenience helper for POST 201 responses.
func Created(c *gin.Context, data interface{}, message string) {
	Success(c, http.StatusCreated, data, message, nil)
}

// Error writes an error response with the given status and message.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Success: false,
		Message: message,
	})
}

// ErrorWithLog writes an error response and logs the underlying error via slog.
func ErrorWithLog(logger *slog.Logger, c *gin.Context, status int, message string, err error) {
	if logger != nil && err != nil {
		logger.ErrorContext(c.Request.Context(), message,
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
	}

	Error(c, status, message)
}

// AppError maps an error onto the envelope, honoring AppError status and code.
// Unknown errors become 500s; gorm.ErrRecordNotFound becomes a 404.
func AppError(logger *slog.Logger, c *gin.Context, err error, fallback string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if logger != nil && appErr.StatusCode() >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request.Context(), appErr.Message(), slog.String("error", err.Error()))
		}
		c.JSON(appErr.StatusCode(), Envelope{
			Success: false,
			Message: appErr.Message(),
			Code:    string(appErr.Code()),
		})
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		Error(c, http.StatusNotFound, "Resource not found")
		return
	}

	ErrorWithLog(logger, c, http.StatusInternalServerError, fallback, err)
}
