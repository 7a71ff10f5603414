package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/internal/repository"
	"github.com/Omar-0O/rtc-volunteers/pkg/apperror"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateMemberInput struct {
	Email       string     `json:"email" binding:"required,email"`
	Password    string     `json:"password" binding:"required,min=8"`
	FullName    string     `json:"full_name" binding:"required"`
	FullNameAr  *string    `json:"full_name_ar"`
	Phone       *string    `json:"phone"`
	Role        string     `json:"role" binding:"required"`
	CommitteeID *uuid.UUID `json:"committee_id"`
	Level       *string    `json:"level"`
}

type UpdateMemberInput struct {
	FullName    *string    `json:"full_name"`
	FullNameAr  *string    `json:"full_name_ar"`
	Phone       *string    `json:"phone"`
	Role        *string    `json:"role"`
	CommitteeID *uuid.UUID `json:"committee_id"`
}

// AdminService is the member-management surface for staff roles.
type AdminService interface {
	CreateMember(ctx context.Context, input CreateMemberInput) (*model.User, error)
	UpdateMember(ctx context.Context, userID uuid.UUID, input UpdateMemberInput) (*model.User, error)
	DeleteMember(ctx context.Context, userID uuid.UUID) error
	ListMembers(ctx context.Context, committeeID *uuid.UUID) ([]model.Profile, error)
	SetLevel(ctx context.Context, userID uuid.UUID, level string) error
	AssignCommittee(ctx context.Context, userID uuid.UUID, committeeID *uuid.UUID) error
	ReindexProfiles(ctx context.Context) error
}

type adminService struct {
	userRepo repository.UserRepository
	search   SearchService
}

func NewAdminService(userRepo repository.UserRepository, search SearchService) AdminService {
	return &adminService{userRepo: userRepo, search: search}
}

func (s *adminService) CreateMember(ctx context.Context, input CreateMemberInput) (*model.User, error) {
	role, err := s.userRepo.FindRoleByName(ctx, input.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: role %s not found", apperror.ErrBadRequest, input.Role)
		}
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	level := model.LevelUnderFollowUp
	if input.Level != nil {
		level = model.NormalizeLevel(*input.Level)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: string(hashed),
		RoleID:       &role.ID,
	}
	profile := &model.Profile{
		FullName:    input.FullName,
		FullNameAr:  input.FullNameAr,
		Phone:       input.Phone,
		CommitteeID: input.CommitteeID,
		Level:       string(level),
	}
	if err := s.userRepo.Create(ctx, user, profile); err != nil {
		return nil, err
	}
	user.Role = *role
	user.Profile = profile

	s.indexProfile(profile)
	return user, nil
}

func (s *adminService) UpdateMember(ctx context.Context, userID uuid.UUID, input UpdateMemberInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		return nil, fmt.Errorf("%w: member has no profile", apperror.ErrNotFound)
	}

	if input.Role != nil {
		role, err := s.userRepo.FindRoleByName(ctx, *input.Role)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: role %s not found", apperror.ErrBadRequest, *input.Role)
			}
			return nil, err
		}
		user.RoleID = &role.ID
		user.Role = *role
	}
	if input.FullName != nil {
		user.Profile.FullName = *input.FullName
	}
	if input.FullNameAr != nil {
		user.Profile.FullNameAr = input.FullNameAr
	}
	if input.Phone != nil {
		user.Profile.Phone = input.Phone
	}
	if input.CommitteeID != nil {
		user.Profile.CommitteeID = input.CommitteeID
	}

	if err := s.userRepo.Update(ctx, user, user.Profile); err != nil {
		return nil, err
	}

	s.indexProfile(user.Profile)
	return user, nil
}

func (s *adminService) DeleteMember(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, userID.String()); err != nil {
		return err
	}
	if s.search != nil {
		if err := s.search.DeleteProfile(userID); err != nil {
			log.Printf("failed to remove profile %s from search index: %v", userID, err)
		}
	}
	return nil
}

func (s *adminService) ListMembers(ctx context.Context, committeeID *uuid.UUID) ([]model.Profile, error) {
	return s.userRepo.FindProfiles(ctx, committeeID)
}

// SetLevel stores the normalized level. Levels are assigned by staff, not
// derived from points.
func (s *adminService) SetLevel(ctx context.Context, userID uuid.UUID, level string) error {
	if err := s.userRepo.SetProfileLevel(ctx, userID, level); err != nil {
		return err
	}
	s.reindexByID(ctx, userID)
	return nil
}

func (s *adminService) AssignCommittee(ctx context.Context, userID uuid.UUID, committeeID *uuid.UUID) error {
	if err := s.userRepo.SetProfileCommittee(ctx, userID, committeeID); err != nil {
		return err
	}
	s.reindexByID(ctx, userID)
	return nil
}

func (s *adminService) ReindexProfiles(ctx context.Context) error {
	if s.search == nil {
		return nil
	}
	profiles, err := s.userRepo.FindProfiles(ctx, nil)
	if err != nil {
		return err
	}
	return s.search.ReindexAll(ctx, profiles)
}

func (s *adminService) indexProfile(profile *model.Profile) {
	if s.search == nil || profile == nil {
		return
	}
	if err := s.search.IndexProfile(profile); err != nil {
		log.Printf("failed to index profile %s: %v", profile.UserID, err)
	}
}

func (s *adminService) reindexByID(ctx context.Context, userID uuid.UUID) {
	if s.search == nil {
		return
	}
	profile, err := s.userRepo.FindProfile(ctx, userID)
	if err != nil {
		log.Printf("failed to reload profile %s for indexing: %v", userID, err)
		return
	}
	s.indexProfile(profile)
}
