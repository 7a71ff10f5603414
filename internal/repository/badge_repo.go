package repository

import (
	"context"
	"errors"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/pkg/apperror"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type BadgeRepository interface {
	Create(ctx context.Context, badge *model.Badge) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Badge, error)
	FindAll(ctx context.Context) ([]model.Badge, error)
	Update(ctx context.Context, badge *model.Badge) error
	Delete(ctx context.Context, id uuid.UUID) error

	Award(ctx context.Context, userID, badgeID uuid.UUID) (*model.UserBadge, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.UserBadge, error)
	ListHolders(ctx context.Context, badgeID uuid.UUID) ([]uuid.UUID, error)
}

type badgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) Create(ctx context.Context, badge *model.Badge) error {
	return r.db.WithContext(ctx).Create(badge).Error
}

func (r *badgeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Badge, error) {
	var badge model.Badge
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&badge).Error; err != nil {
		return nil, err
	}

	return &badge, nil
}

func (r *badgeRepository) FindAll(ctx context.Context) ([]model.Badge, error) {
	var badges []model.Badge
	if err := r.db.WithContext(ctx).Order("name").Find(&badges).Error; err != nil {
		return nil, err
	}

	return badges, nil
}

func (r *badgeRepository) Update(ctx context.Context, badge *model.Badge) error {
	return r.db.WithContext(ctx).Save(badge).Error
}

func (r *badgeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Badge{}, "id = ?", id).Error
}

// Award inserts the (user, badge) row. The idx_user_badge unique index is
// the real uniqueness guarantee; a violation surfaces as ErrDuplicateAward
// so callers can show a specific message.
func (r *badgeRepository) Award(ctx context.Context, userID, badgeID uuid.UUID) (*model.UserBadge, error) {
	award := &model.UserBadge{
		UserID:  userID,
		BadgeID: badgeID,
	}

	if err := r.db.WithContext(ctx).Create(award).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, apperror.ErrDuplicateAward
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrDuplicateAward
		}
		return nil, err
	}

	return award, nil
}

func (r *badgeRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.UserBadge, error) {
	var awards []model.UserBadge
	if err := r.db.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&awards).Error; err != nil {
		return nil, err
	}

	return awards, nil
}

func (r *badgeRepository) ListHolders(ctx context.Context, badgeID uuid.UUID) ([]uuid.UUID, error) {
	var holders []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&model.UserBadge{}).
		Where("badge_id = ?", badgeID).
		Pluck("user_id", &holders).Error; err != nil {
		return nil, err
	}

	return holders, nil
}
