package family

import (
	"strings"
	"time"
)

// Role is the canonical classification of a member's relation code.
// Stored codes carry Hungarian/English synonyms; ParseRole folds them
// into one enum at the data-access boundary.
type Role int

const (
	RoleUnknown Role = iota
	RoleHusband
	RoleWife
	RoleChild
)

func (r Role) String() string {
	switch r {
	case RoleHusband:
		return "husband"
	case RoleWife:
		return "wife"
	case RoleChild:
		return "child"
	default:
		return "unknown"
	}
}

// ParseRole maps a stored relation code to its canonical role.
// Unknown codes classify as RoleUnknown and are kept out of the
// husband/wife/children display partition.
func ParseRole(code string) Role {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "ferj", "husband":
		return RoleHusband
	case "feleseg", "wife":
		return RoleWife
	case "gyermek", "child", "children":
		return RoleChild
	default:
		return RoleUnknown
	}
}

type Family struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedBy string    `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Member is a genealogy node. ParentID is a nullable self-reference;
// the stored graph is expected to be a forest but user-edited parent
// links are not validated, so readers must not assume acyclicity.
type Member struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID     string     `gorm:"type:uuid;not null;index" json:"family_id"`
	Name         string     `gorm:"not null" json:"name"`
	RelationCode string     `gorm:"size:32" json:"relation_code"`
	Gender       *string    `gorm:"size:16" json:"gender"`
	BirthDate    *time.Time `json:"birth_date"`
	DeathDate    *time.Time `json:"death_date"`
	ParentID     *string    `gorm:"type:uuid;index" json:"parent_id"`
	IsPrimary    bool       `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "family_members"
}

// Role returns the canonical role of the member's stored relation code.
func (m Member) Role() Role {
	return ParseRole(m.RelationCode)
}
