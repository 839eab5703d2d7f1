package admin

import "errors"

var ErrSelfDeletion = errors.New("admins cannot delete their own account")
