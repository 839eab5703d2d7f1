package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMentorNotApproved  = errors.New("mentor account pending approval")
	ErrInvalidRole        = errors.New("role must be student or mentor")
)
