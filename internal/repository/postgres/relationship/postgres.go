package relationship

import (
	"context"
	"errors"
	"time"

	relationshipdomain "clergy-registry-go/internal/domain/relationship"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(relationshipdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetCurrent(ctx context.Context, pastorID string) (*relationshipdomain.Relationship, error) {
	var rel relationshipdomain.Relationship
	if err := r.db.WithContext(ctx).
		Where("pastor_id = ? AND is_current = true", pastorID).
		First(&rel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, relationshipdomain.ErrNoCurrentRelationship
		}
		return nil, err
	}
	return &rel, nil
}

func (r *PostgresRepository) ListByPastor(ctx context.Context, pastorID string) ([]relationshipdomain.RelationshipWithSpouse, error) {
	type relRow struct {
		relationshipdomain.Relationship
		SpouseName *string `gorm:"column:spouse_name"`
	}

	var rows []relRow
	if err := r.db.WithContext(ctx).
		Table("relationships").
		Select("relationships.*, family_members.name AS spouse_name").
		Joins("left join family_members on family_members.id = relationships.spouse_id").
		Where("relationships.pastor_id = ?", pastorID).
		Order("relationships.started_on asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]relationshipdomain.RelationshipWithSpouse, 0, len(rows))
	for _, row := range rows {
		enriched := relationshipdomain.RelationshipWithSpouse{Relationship: row.Relationship}
		if row.SpouseName != nil {
			enriched.SpouseName = *row.SpouseName
		}
		result = append(result, enriched)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rel *relationshipdomain.Relationship) error {
	return r.db.WithContext(ctx).Create(rel).Error
}

func (r *PostgresRepository) CloseCurrent(ctx context.Context, pastorID string, endedOn time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&relationshipdomain.Relationship{}).
		Where("pastor_id = ? AND is_current = true", pastorID).
		Updates(map[string]interface{}{"is_current": false, "ended_on": endedOn})
	return result.RowsAffected, result.Error
}
