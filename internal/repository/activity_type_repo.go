package repository

import (
	"context"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityTypeRepository interface {
	Create(ctx context.Context, activityType *model.ActivityType) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ActivityType, error)
	FindAll(ctx context.Context, committeeID *uuid.UUID) ([]model.ActivityType, error)
	Update(ctx context.Context, activityType *model.ActivityType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type activityTypeRepository struct {
	db *gorm.DB
}

func NewActivityTypeRepository(db *gorm.DB) ActivityTypeRepository {
	return &activityTypeRepository{db: db}
}

func (r *activityTypeRepository) Create(ctx context.Context, activityType *model.ActivityType) error {
	return r.db.WithContext(ctx).Create(activityType).Error
}

func (r *activityTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ActivityType, error) {
	var activityType model.ActivityType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&activityType).Error; err != nil {
		return nil, err
	}

	return &activityType, nil
}

func (r *activityTypeRepository) FindAll(ctx context.Context, committeeID *uuid.UUID) ([]model.ActivityType, error) {
	q := r.db.WithContext(ctx).Order("name")
	if committeeID != nil {
		q = q.Where("committee_id = ?", *committeeID)
	}

	var types []model.ActivityType
	if err := q.Find(&types).Error; err != nil {
		return nil, err
	}

	return types, nil
}

func (r *activityTypeRepository) Update(ctx context.Context, activityType *model.ActivityType) error {
	return r.db.WithContext(ctx).Save(activityType).Error
}

func (r *activityTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ActivityType{}, "id = ?", id).Error
}
