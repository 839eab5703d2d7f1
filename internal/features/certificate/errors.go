package certificate

import "errors"

var (
	ErrNotEligible  = errors.New("course is not fully completed")
	ErrRenderFailed = errors.New("certificate renderer failed")
)
