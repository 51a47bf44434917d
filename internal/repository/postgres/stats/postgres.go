package stats

import (
	"context"

	statsdomain "clergy-registry-go/internal/domain/stats"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Summary(ctx context.Context) (statsdomain.Summary, error) {
	var summary statsdomain.Summary

	counts := []struct {
		query string
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM families", &summary.Families},
		{"SELECT COUNT(*) FROM family_members", &summary.Members},
		{"SELECT COUNT(*) FROM pastors", &summary.Pastors},
		{"SELECT COUNT(*) FROM relationships WHERE is_current = true", &summary.CurrentRelationships},
	}

	for _, count := range counts {
		if err := r.db.WithContext(ctx).Raw(count.query).Scan(count.dest).Error; err != nil {
			return statsdomain.Summary{}, err
		}
	}

	return summary, nil
}
