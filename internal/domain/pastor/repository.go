package pastor

import "context"

type Repository interface {
	Get(ctx context.Context, pastorID string) (*Pastor, error)
	List(ctx context.Context) ([]Pastor, error)
	Save(ctx context.Context, pastor *Pastor) error
}
