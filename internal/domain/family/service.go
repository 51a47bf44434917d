package family

import (
	"context"
	"strings"
	"time"

	"clergy-registry-go/internal/domain/relationship"
	"github.com/google/uuid"
)

// RelationshipSource resolves the current marital union of a pastor.
// Satisfied by the relationship service.
type RelationshipSource interface {
	Current(ctx context.Context, pastorID string) (*relationship.Relationship, error)
}

// Detail is the assembled read model of one family: the record itself,
// its members partitioned for display, and the primary member's current
// union when one exists.
type Detail struct {
	Family       Family                     `json:"family"`
	Members      []Member                   `json:"members"`
	Partition    Partition                  `json:"partition"`
	Relationship *relationship.Relationship `json:"relationship"`
}

// FamilyTree wraps a built tree with the family's display name, matching
// the registry's tree export envelope.
type FamilyTree struct {
	FamilyName string    `json:"family_name"`
	Root       *TreeNode `json:"root_member"`
}

// MemberInput carries the member-save form fields. Optional fields pass
// through as provided; only name and family id are validated.
type MemberInput struct {
	ID           string
	FamilyID     string
	Name         string
	RelationCode string
	Gender       *string
	BirthDate    *time.Time
	DeathDate    *time.Time
	ParentID     *string
	IsPrimary    bool
}

type Service struct {
	repo          Repository
	relationships RelationshipSource
	tree          *TreeBuilder
	cache         Cache
	cacheTTL      time.Duration
}

func NewService(repo Repository, relationships RelationshipSource) *Service {
	return &Service{
		repo:          repo,
		relationships: relationships,
		tree:          NewTreeBuilder(repo),
		cache:         noopCache{},
		cacheTTL:      0,
	}
}

// WithCache plugs a detail cache in; TTL <= 0 keeps caching disabled.
func (s *Service) WithCache(cache Cache, ttl time.Duration) *Service {
	if cache != nil {
		s.cache = cache
	}
	s.cacheTTL = ttl
	return s
}

func (s *Service) CreateFamily(ctx context.Context, actorID, name string) (*Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	family := Family{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedBy: actorID,
	}
	if err := s.repo.CreateFamily(ctx, &family); err != nil {
		return nil, err
	}

	return &family, nil
}

func (s *Service) GetFamily(ctx context.Context, familyID string) (*Family, error) {
	return s.repo.GetFamily(ctx, familyID)
}

func (s *Service) ListFamilies(ctx context.Context) ([]Family, error) {
	return s.repo.ListFamilies(ctx)
}

func (s *Service) ListFamiliesOwnedBy(ctx context.Context, ownerID string) ([]Family, error) {
	return s.repo.ListFamiliesByOwner(ctx, ownerID)
}

// FamilyDetail loads the family, classifies its members and attaches the
// primary member's current union. A family without a primary member or
// without a current union still yields a detail, with Relationship nil.
func (s *Service) FamilyDetail(ctx context.Context, familyID string) (*Detail, error) {
	if cached, ok := s.cache.GetDetail(familyID); ok {
		return cached, nil
	}

	family, err := s.repo.GetFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, familyID)
	if err != nil {
		return nil, err
	}

	detail := &Detail{
		Family:    *family,
		Members:   members,
		Partition: Classify(members),
	}

	for i := range members {
		if !members[i].IsPrimary {
			continue
		}
		current, err := s.relationships.Current(ctx, members[i].ID)
		if err != nil {
			return nil, err
		}
		detail.Relationship = current
		break
	}

	s.cache.SetDetail(familyID, detail, s.cacheTTL)
	return detail, nil
}

// InvalidateDetailForMember drops the cached detail of the member's
// family. Wired as the relationship service's change hook so a recorded
// or closed union is not served stale for the cache TTL.
func (s *Service) InvalidateDetailForMember(ctx context.Context, memberID string) {
	member, err := s.repo.GetMember(ctx, memberID)
	if err != nil {
		return
	}
	s.cache.DeleteDetail(member.FamilyID)
}

// FamilyTree builds the descendant tree anchored at the family's primary
// member. A family with members but no primary flag yields
// ErrNoPrimaryMember, distinct from a missing family.
func (s *Service) FamilyTree(ctx context.Context, familyID string) (*FamilyTree, error) {
	family, err := s.repo.GetFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}

	primary, err := s.repo.GetPrimaryMember(ctx, familyID)
	if err != nil {
		return nil, err
	}

	root, err := s.tree.Build(ctx, primary.ID)
	if err != nil {
		return nil, err
	}

	return &FamilyTree{FamilyName: family.Name, Root: root}, nil
}

// MemberTree builds a tree rooted at an arbitrary member. An unknown
// root yields an empty tree, not an error.
func (s *Service) MemberTree(ctx context.Context, memberID string) (*TreeNode, error) {
	return s.tree.Build(ctx, memberID)
}

// SaveMember inserts or updates a member. Parent link, dates and the
// primary flag pass through unvalidated; cross-field checks are the
// caller's concern.
func (s *Service) SaveMember(ctx context.Context, in MemberInput) (*Member, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.FamilyID = strings.TrimSpace(in.FamilyID)
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if in.FamilyID == "" {
		return nil, ErrFamilyRequired
	}

	if _, err := s.repo.GetFamily(ctx, in.FamilyID); err != nil {
		return nil, err
	}

	member := Member{
		ID:           in.ID,
		FamilyID:     in.FamilyID,
		Name:         in.Name,
		RelationCode: in.RelationCode,
		Gender:       in.Gender,
		BirthDate:    in.BirthDate,
		DeathDate:    in.DeathDate,
		ParentID:     in.ParentID,
		IsPrimary:    in.IsPrimary,
	}
	if member.ID == "" {
		member.ID = uuid.NewString()
	}

	if err := s.repo.SaveMember(ctx, &member); err != nil {
		return nil, err
	}

	s.cache.DeleteDetail(in.FamilyID)
	return &member, nil
}
