package progress

import "github.com/codearc/codearc-server/pkg/apperrors"

var (
	ErrNotEnrolled       = apperrors.Forbidden("You are not enrolled in this course.")
	ErrSequenceViolation = apperrors.SequenceViolation("Complete the previous chapter first.")
)
