package repository

import (
	"context"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User, profile *model.Profile) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindRoleByName(ctx context.Context, name string) (*model.Role, error)
	Update(ctx context.Context, user *model.User, profile *model.Profile) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)

	FindProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	FindProfiles(ctx context.Context, committeeID *uuid.UUID) ([]model.Profile, error)
	FindProfilesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Profile, error)
	UpdateProfileTotals(ctx context.Context, userID uuid.UUID, totalPoints, activitiesCount int) error
	SetProfileCommittee(ctx context.Context, userID uuid.UUID, committeeID *uuid.UUID) error
	SetProfileLevel(ctx context.Context, userID uuid.UUID, level string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User, profile *model.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		if profile != nil {
			profile.UserID = user.ID
			if err := tx.Create(profile).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Profile").
		Preload("Profile.Committee").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Profile").
		Preload("Profile.Committee").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}

	return &role, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User, profile *model.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user != nil {
			if err := tx.Save(user).Error; err != nil {
				return err
			}
		}

		if profile != nil {
			if err := tx.Save(profile).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepository) FindProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).
		Preload("Committee").
		Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *userRepository) FindProfiles(ctx context.Context, committeeID *uuid.UUID) ([]model.Profile, error) {
	q := r.db.WithContext(ctx).Preload("Committee").Preload("User")
	if committeeID != nil {
		q = q.Where("committee_id = ?", *committeeID)
	}

	var profiles []model.Profile
	if err := q.Find(&profiles).Error; err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *userRepository) FindProfilesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var profiles []model.Profile
	if err := r.db.WithContext(ctx).
		Preload("Committee").
		Preload("User").
		Where("user_id IN ?", ids).
		Find(&profiles).Error; err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *userRepository) UpdateProfileTotals(ctx context.Context, userID uuid.UUID, totalPoints, activitiesCount int) error {
	return r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"total_points":     totalPoints,
			"activities_count": activitiesCount,
		}).Error
}

func (r *userRepository) SetProfileCommittee(ctx context.Context, userID uuid.UUID, committeeID *uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("committee_id", committeeID).Error
}

func (r *userRepository) SetProfileLevel(ctx context.Context, userID uuid.UUID, level string) error {
	return r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("level", string(model.NormalizeLevel(level))).Error
}
