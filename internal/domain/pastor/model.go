package pastor

import "time"

// Pastor is a clergy biographical record. A pastor who also appears as a
// family's primary member must be saved with that member's UUID (via the
// id field of the save request) so relationship rows resolve from either
// side.
type Pastor struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string     `gorm:"not null" json:"name"`
	BirthDate  *time.Time `json:"birth_date"`
	OrdainedOn *time.Time `json:"ordained_on"`
	OrdainedAt string     `json:"ordained_at"`
	Biography  string     `gorm:"type:text" json:"biography"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
