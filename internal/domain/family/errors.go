package family

import "errors"

var (
	ErrFamilyNotFound  = errors.New("family not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrNoPrimaryMember = errors.New("family has no primary member")
	ErrNameRequired    = errors.New("name is required")
	ErrFamilyRequired  = errors.New("family id is required")
	ErrCycleDetected   = errors.New("cycle detected in parent links")
	ErrDepthExceeded   = errors.New("tree depth limit exceeded")
)
