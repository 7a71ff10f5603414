package repository

import (
	"context"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FineRepository interface {
	CreateFineType(ctx context.Context, fineType *model.FineType) error
	FindFineType(ctx context.Context, id uuid.UUID) (*model.FineType, error)
	FindAllFineTypes(ctx context.Context) ([]model.FineType, error)
	UpdateFineType(ctx context.Context, fineType *model.FineType) error
	DeleteFineType(ctx context.Context, id uuid.UUID) error

	CreateFine(ctx context.Context, fine *model.Fine) error
	FindFine(ctx context.Context, id uuid.UUID) (*model.Fine, error)
	ListFines(ctx context.Context, volunteerID uuid.UUID) ([]model.Fine, error)
	DeleteFine(ctx context.Context, id uuid.UUID) error
	SetFinePaid(ctx context.Context, id uuid.UUID, isPaid bool) error

	ListCaravanVestViolations(ctx context.Context, volunteerID uuid.UUID) ([]model.CaravanParticipant, error)
	FindCaravanParticipant(ctx context.Context, id uuid.UUID) (*model.CaravanParticipant, error)
	SetCaravanWoreVest(ctx context.Context, id uuid.UUID, woreVest bool) error
}

type fineRepository struct {
	db *gorm.DB
}

func NewFineRepository(db *gorm.DB) FineRepository {
	return &fineRepository{db: db}
}

func (r *fineRepository) CreateFineType(ctx context.Context, fineType *model.FineType) error {
	return r.db.WithContext(ctx).Create(fineType).Error
}

func (r *fineRepository) FindFineType(ctx context.Context, id uuid.UUID) (*model.FineType, error) {
	var fineType model.FineType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&fineType).Error; err != nil {
		return nil, err
	}

	return &fineType, nil
}

func (r *fineRepository) FindAllFineTypes(ctx context.Context) ([]model.FineType, error) {
	var fineTypes []model.FineType
	if err := r.db.WithContext(ctx).Order("name").Find(&fineTypes).Error; err != nil {
		return nil, err
	}

	return fineTypes, nil
}

func (r *fineRepository) UpdateFineType(ctx context.Context, fineType *model.FineType) error {
	return r.db.WithContext(ctx).Save(fineType).Error
}

func (r *fineRepository) DeleteFineType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.FineType{}, "id = ?", id).Error
}

func (r *fineRepository) CreateFine(ctx context.Context, fine *model.Fine) error {
	return r.db.WithContext(ctx).Create(fine).Error
}

func (r *fineRepository) FindFine(ctx context.Context, id uuid.UUID) (*model.Fine, error) {
	var fine model.Fine
	if err := r.db.WithContext(ctx).
		Preload("FineType").
		Where("id = ?", id).
		First(&fine).Error; err != nil {
		return nil, err
	}

	return &fine, nil
}

func (r *fineRepository) ListFines(ctx context.Context, volunteerID uuid.UUID) ([]model.Fine, error) {
	var fines []model.Fine
	if err := r.db.WithContext(ctx).
		Preload("FineType").
		Where("volunteer_id = ?", volunteerID).
		Order("created_at DESC").
		Find(&fines).Error; err != nil {
		return nil, err
	}

	return fines, nil
}

func (r *fineRepository) DeleteFine(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Fine{}, "id = ?", id).Error
}

func (r *fineRepository) SetFinePaid(ctx context.Context, id uuid.UUID, isPaid bool) error {
	return r.db.WithContext(ctx).Model(&model.Fine{}).
		Where("id = ?", id).
		Update("is_paid", isPaid).Error
}

func (r *fineRepository) ListCaravanVestViolations(ctx context.Context, volunteerID uuid.UUID) ([]model.CaravanParticipant, error) {
	var participants []model.CaravanParticipant
	if err := r.db.WithContext(ctx).
		Preload("Caravan").
		Where("volunteer_id = ? AND wore_vest = ?", volunteerID, false).
		Order("created_at DESC").
		Find(&participants).Error; err != nil {
		return nil, err
	}

	return participants, nil
}

func (r *fineRepository) FindCaravanParticipant(ctx context.Context, id uuid.UUID) (*model.CaravanParticipant, error) {
	var participant model.CaravanParticipant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&participant).Error; err != nil {
		return nil, err
	}

	return &participant, nil
}

func (r *fineRepository) SetCaravanWoreVest(ctx context.Context, id uuid.UUID, woreVest bool) error {
	return r.db.WithContext(ctx).Model(&model.CaravanParticipant{}).
		Where("id = ?", id).
		Update("wore_vest", woreVest).Error
}
