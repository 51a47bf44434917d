package relationship

import "time"

// Relationship records a marital union between a pastor and a spouse
// (a family member record). At most one row per pastor is current at a
// time; Record enforces that by closing the open row and inserting the
// new one inside a single transaction.
//
// PastorID keys the pastors table. A pastor who is also recorded as a
// family's primary member shares that member record's UUID, which is how
// a family detail resolves its current union by member id.
type Relationship struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	PastorID  string     `gorm:"type:uuid;not null;index" json:"pastor_id"`
	SpouseID  string     `gorm:"type:uuid;not null" json:"spouse_id"`
	StartedOn time.Time  `json:"started_on"`
	EndedOn   *time.Time `json:"ended_on"`
	IsCurrent bool       `gorm:"not null;default:false" json:"is_current"`
	Place     string     `json:"place"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// RelationshipWithSpouse is a history row enriched with the
// counter-party's display name.
type RelationshipWithSpouse struct {
	Relationship
	SpouseName string `json:"spouse_name"`
}

type RecordInput struct {
	PastorID  string
	SpouseID  string
	StartedOn time.Time
	Place     string
}
