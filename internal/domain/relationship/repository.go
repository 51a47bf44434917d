package relationship

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	// GetCurrent returns ErrNoCurrentRelationship when the pastor has no
	// open union.
	GetCurrent(ctx context.Context, pastorID string) (*Relationship, error)
	// ListByPastor returns the pastor's unions ascending by start date,
	// each enriched with the spouse's display name.
	ListByPastor(ctx context.Context, pastorID string) ([]RelationshipWithSpouse, error)
	Create(ctx context.Context, rel *Relationship) error
	// CloseCurrent stamps the end date on the open union and clears its
	// current flag, returning the number of rows affected. Zero rows is
	// not an error.
	CloseCurrent(ctx context.Context, pastorID string, endedOn time.Time) (int64, error)
}
