package relationship

import "errors"

var (
	ErrNoCurrentRelationship = errors.New("no current relationship")
	ErrPastorRequired        = errors.New("pastor id is required")
	ErrSpouseRequired        = errors.New("spouse id is required")
	ErrStartDateRequired     = errors.New("start date is required")
)
