package family

import (
	"context"
	"errors"

	familydomain "clergy-registry-go/internal/domain/family"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(familydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetFamily(ctx context.Context, familyID string) (*familydomain.Family, error) {
	var family familydomain.Family
	if err := r.db.WithContext(ctx).Where("id = ?", familyID).First(&family).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, familydomain.ErrFamilyNotFound
		}
		return nil, err
	}
	return &family, nil
}

func (r *PostgresRepository) ListFamilies(ctx context.Context) ([]familydomain.Family, error) {
	var families []familydomain.Family
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&families).Error; err != nil {
		return nil, err
	}
	return families, nil
}

func (r *PostgresRepository) ListFamiliesByOwner(ctx context.Context, ownerID string) ([]familydomain.Family, error) {
	var families []familydomain.Family
	if err := r.db.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Order("created_at desc").
		Find(&families).Error; err != nil {
		return nil, err
	}
	return families, nil
}

func (r *PostgresRepository) CreateFamily(ctx context.Context, family *familydomain.Family) error {
	return r.db.WithContext(ctx).Create(family).Error
}

func (r *PostgresRepository) GetMember(ctx context.Context, memberID string) (*familydomain.Member, error) {
	var member familydomain.Member
	if err := r.db.WithContext(ctx).Where("id = ?", memberID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, familydomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, familyID string) ([]familydomain.Member, error) {
	var members []familydomain.Member
	if err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("is_primary desc, birth_date asc nulls last, created_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) ListChildren(ctx context.Context, parentID string) ([]familydomain.Member, error) {
	var members []familydomain.Member
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("birth_date asc nulls last, created_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) GetParent(ctx context.Context, memberID string) (*familydomain.Member, error) {
	member, err := r.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.ParentID == nil || *member.ParentID == "" {
		return nil, nil
	}

	parent, err := r.GetMember(ctx, *member.ParentID)
	if errors.Is(err, familydomain.ErrMemberNotFound) {
		// Dangling parent link; treat as no parent.
		return nil, nil
	}
	return parent, err
}

func (r *PostgresRepository) GetPrimaryMember(ctx context.Context, familyID string) (*familydomain.Member, error) {
	var member familydomain.Member
	if err := r.db.WithContext(ctx).
		Where("family_id = ? AND is_primary = true", familyID).
		Order("created_at asc").
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, familydomain.ErrNoPrimaryMember
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) SaveMember(ctx context.Context, member *familydomain.Member) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(member).Error
}
