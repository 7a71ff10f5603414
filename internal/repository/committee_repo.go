package repository

import (
	"context"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommitteeRepository interface {
	Create(ctx context.Context, committee *model.Committee) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Committee, error)
	FindAll(ctx context.Context) ([]model.Committee, error)
	Update(ctx context.Context, committee *model.Committee) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountMembers(ctx context.Context, id uuid.UUID) (int64, error)
}

type committeeRepository struct {
	db *gorm.DB
}

func NewCommitteeRepository(db *gorm.DB) CommitteeRepository {
	return &committeeRepository{db: db}
}

func (r *committeeRepository) Create(ctx context.Context, committee *model.Committee) error {
	return r.db.WithContext(ctx).Create(committee).Error
}

func (r *committeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Committee, error) {
	var committee model.Committee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&committee).Error; err != nil {
		return nil, err
	}

	return &committee, nil
}

func (r *committeeRepository) FindAll(ctx context.Context) ([]model.Committee, error) {
	var committees []model.Committee
	if err := r.db.WithContext(ctx).Order("name").Find(&committees).Error; err != nil {
		return nil, err
	}

	return committees, nil
}

func (r *committeeRepository) Update(ctx context.Context, committee *model.Committee) error {
	return r.db.WithContext(ctx).Save(committee).Error
}

func (r *committeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Committee{}, "id = ?", id).Error
}

func (r *committeeRepository) CountMembers(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("committee_id = ?", id).
		Count(&count).Error
	return count, err
}
