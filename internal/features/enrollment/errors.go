package enrollment

import "github.com/codearc/codearc-server/pkg/apperrors"

var (
	ErrAlreadyEnrolled = apperrors.Conflict("Student is already enrolled in this course.")
	ErrNotEnrolled     = apperrors.NotFound("Enrollment not found.")
	ErrNotAStudent     = apperrors.Validation("Only students can be enrolled.")
)
