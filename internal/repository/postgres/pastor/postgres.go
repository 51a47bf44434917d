package pastor

import (
	"context"
	"errors"

	pastordomain "clergy-registry-go/internal/domain/pastor"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, pastorID string) (*pastordomain.Pastor, error) {
	var pastor pastordomain.Pastor
	if err := r.db.WithContext(ctx).Where("id = ?", pastorID).First(&pastor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pastordomain.ErrPastorNotFound
		}
		return nil, err
	}
	return &pastor, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]pastordomain.Pastor, error) {
	var pastors []pastordomain.Pastor
	if err := r.db.WithContext(ctx).
		Order("name asc").
		Find(&pastors).Error; err != nil {
		return nil, err
	}
	return pastors, nil
}

func (r *PostgresRepository) Save(ctx context.Context, pastor *pastordomain.Pastor) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(pastor).Error
}
