package family

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetFamily(ctx context.Context, familyID string) (*Family, error)
	ListFamilies(ctx context.Context) ([]Family, error)
	ListFamiliesByOwner(ctx context.Context, ownerID string) ([]Family, error)
	CreateFamily(ctx context.Context, family *Family) error

	GetMember(ctx context.Context, memberID string) (*Member, error)
	// ListMembers returns the family's members primary-first, then
	// ascending birth date, ties broken by insertion order.
	ListMembers(ctx context.Context, familyID string) ([]Member, error)
	// ListChildren returns direct children of a member ascending by
	// birth date, ties broken by insertion order.
	ListChildren(ctx context.Context, parentID string) ([]Member, error)
	// GetParent returns nil, nil when the member has no parent link or
	// the link is dangling.
	GetParent(ctx context.Context, memberID string) (*Member, error)
	// GetPrimaryMember returns the first member flagged primary by
	// declared order; ErrNoPrimaryMember when none is flagged.
	GetPrimaryMember(ctx context.Context, familyID string) (*Member, error)
	SaveMember(ctx context.Context, member *Member) error
}
