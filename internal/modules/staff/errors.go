package staff

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("join request not found")
	ErrBusinessNotFound = errors.New("business not found")
	ErrDuplicateRequest = errors.New("a pending join request already exists for this business")
	ErrAlreadyResolved  = errors.New("join request already resolved")
	ErrForbidden        = errors.New("only the named supervisor may resolve this request")
)
