package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
		code   ErrorCode
	}{
		{Validation("bad input"), http.StatusBadRequest, ErrValidation},
		{NotFound("missing"), http.StatusNotFound, ErrNotFound},
		{Forbidden("nope"), http.StatusForbidden, ErrForbidden},
		{Conflict("taken"), http.StatusConflict, ErrConflict},
		{SequenceViolation("out of order"), http.StatusForbidden, ErrSequenceViolation},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.StatusCode())
		assert.Equal(t, tt.code, tt.err.Code())
	}
}

func TestIs(t *testing.T) {
	err := SequenceViolation("previous chapter incomplete")
	wrapped := fmt.Errorf("complete chapter: %w", err)

	assert.True(t, Is(wrapped, ErrSequenceViolation))
	assert.False(t, Is(wrapped, ErrConflict))
	assert.False(t, Is(errors.New("plain"), ErrSequenceViolation))
}

func TestSentinelIdentity(t *testing.T) {
	sentinel := Conflict("already enrolled")
	wrapped := fmt.Errorf("enroll: %w", sentinel)

	assert.ErrorIs(t, wrapped, sentinel)
}

func TestWrap(t *testing.T) {
	base := errors.New("db down")
	wrapped := Wrap(base, "failed to load", http.StatusInternalServerError, ErrInternal)

	assert.Equal(t, http.StatusInternalServerError, wrapped.StatusCode())
	assert.ErrorIs(t, wrapped, base)

	already := NotFound("gone")
	assert.Same(t, already, Wrap(already, "ignored", http.StatusTeapot, ErrInternal))

	assert.Nil(t, Wrap(nil, "none", http.StatusOK, ErrInternal))
}
