package pastor

import "errors"

var (
	ErrPastorNotFound = errors.New("pastor not found")
	ErrNameRequired   = errors.New("name is required")
)
