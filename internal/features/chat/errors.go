package chat

import "errors"

var (
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrEmptyMessage     = errors.New("message content is required")
	ErrSelfMessage      = errors.New("cannot message yourself")
)
