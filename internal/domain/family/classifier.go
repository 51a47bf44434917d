package family

// Partition is the single-generation display grouping of a family's
// members: two parent slots plus children. Members with unknown relation
// codes stay in the family's member list but appear in no bucket.
type Partition struct {
	Husbands   []Member
	Wives      []Member
	Children   []Member
	HasHusband bool
	HasWife    bool
}

// Classify partitions members by canonical role. It is a pure function:
// input order is preserved in every bucket, so a list already sorted
// primary-first / birth-date ascending stays that way. Multiple members
// in a parent slot are retained as-is; cardinality is display policy,
// not a storage constraint.
func Classify(members []Member) Partition {
	var p Partition
	for _, member := range members {
		switch member.Role() {
		case RoleHusband:
			p.HasHusband = true
			p.Husbands = append(p.Husbands, member)
		case RoleWife:
			p.HasWife = true
			p.Wives = append(p.Wives, member)
		case RoleChild:
			p.Children = append(p.Children, member)
		}
	}
	return p
}

// EligibleRoles lists the roles a newly added member may take. Once both
// parent slots are occupied only children can be added.
func (p Partition) EligibleRoles() []Role {
	if p.HasHusband && p.HasWife {
		return []Role{RoleChild}
	}
	roles := make([]Role, 0, 3)
	if !p.HasHusband {
		roles = append(roles, RoleHusband)
	}
	if !p.HasWife {
		roles = append(roles, RoleWife)
	}
	return append(roles, RoleChild)
}
