package chapter

import "errors"

var (
	ErrChapterNotFound = errors.New("chapter not found")
	ErrTitleRequired   = errors.New("chapter title is required")
	ErrVideoRequired   = errors.New("chapter video url is required")
	ErrNotEnrolled     = errors.New("student is not enrolled in this course")
)
