package user

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrInvalidRole    = errors.New("invalid role")
	ErrWrongPassword  = errors.New("incorrect password")
	ErrPasswordLength = errors.New("password must be at least 8 characters")
)
