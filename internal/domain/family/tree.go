package family

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// maxTreeDepth bounds recursion over pathological parent chains. Real
// genealogies stay far below this.
const maxTreeDepth = 64

const dateLayout = "2006-01-02"

// TreeNode is the serializable shape of one member in a family tree.
// Field names match the registry's tree export format.
type TreeNode struct {
	ID        string      `json:"uuid"`
	Name      string      `json:"name"`
	Relation  string      `json:"relation"`
	BirthDate *string     `json:"birth_date"`
	IsPrimary bool        `json:"is_primary"`
	Children  []*TreeNode `json:"children"`
}

// TreeBuilder materializes the descendant hierarchy of a member by
// recursively following parent links in reverse. One repository
// round-trip per node; fine for family-sized graphs.
type TreeBuilder struct {
	repo Repository
}

func NewTreeBuilder(repo Repository) *TreeBuilder {
	return &TreeBuilder{repo: repo}
}

// Build returns the tree rooted at rootID, or nil with no error when the
// root does not exist. Parent links are user-editable without validation,
// so the walk keeps a visited set and a depth ceiling instead of trusting
// the graph to be acyclic.
func (b *TreeBuilder) Build(ctx context.Context, rootID string) (*TreeNode, error) {
	root, err := b.repo.GetMember(ctx, rootID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve root member: %w", err)
	}

	visited := make(map[string]struct{})
	return b.expand(ctx, root, visited, 0)
}

func (b *TreeBuilder) expand(ctx context.Context, member *Member, visited map[string]struct{}, depth int) (*TreeNode, error) {
	if depth >= maxTreeDepth {
		return nil, fmt.Errorf("%w: member %s at depth %d", ErrDepthExceeded, member.ID, depth)
	}
	if _, seen := visited[member.ID]; seen {
		return nil, fmt.Errorf("%w: member %s revisited", ErrCycleDetected, member.ID)
	}
	visited[member.ID] = struct{}{}

	node := &TreeNode{
		ID:        member.ID,
		Name:      member.Name,
		Relation:  member.RelationCode,
		BirthDate: formatDate(member.BirthDate),
		IsPrimary: member.IsPrimary,
		Children:  []*TreeNode{},
	}

	children, err := b.repo.ListChildren(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("list children of %s: %w", member.ID, err)
	}

	for i := range children {
		child, err := b.expand(ctx, &children[i], visited, depth+1)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}

	return node, nil
}

func formatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(dateLayout)
	return &formatted
}
