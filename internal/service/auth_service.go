package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/internal/repository"
	"github.com/Omar-0O/rtc-volunteers/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterInput struct {
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	FullName   string  `json:"full_name" binding:"required"`
	FullNameAr *string `json:"full_name_ar"`
	Phone      *string `json:"phone"`
	Role       *string `json:"role"`
}

type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        *model.User    `json:"user"`
	Profile     *model.Profile `json:"profile,omitempty"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
}

type authService struct {
	repo        repository.UserRepository
	search      SearchService
	secret      string
	tokenTTL    time.Duration
	defaultRole string
}

func NewAuthService(repo repository.UserRepository, search SearchService, secret string) AuthService {
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		secret = "change-me"
	}

	ttl := 24 * time.Hour
	if ttlStr := os.Getenv("JWT_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil {
			ttl = time.Duration(minutes) * time.Minute
		}
	}

	return &authService{
		repo:        repo,
		search:      search,
		secret:      secret,
		tokenTTL:    ttl,
		defaultRole: model.RoleVolunteer,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	if existing, err := s.repo.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email is already registered", apperror.ErrBadRequest)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	roleName := s.defaultRole
	if input.Role != nil && *input.Role != "" {
		roleName = *input.Role
	}
	role, err := s.repo.FindRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: role %s not found", apperror.ErrBadRequest, roleName)
		}
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		RoleID:       &role.ID,
	}
	profile := &model.Profile{
		FullName:   input.FullName,
		FullNameAr: input.FullNameAr,
		Phone:      input.Phone,
		JoinedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, user, profile); err != nil {
		return nil, err
	}
	user.Role = *role

	if s.search != nil {
		if err := s.search.IndexProfile(profile); err != nil {
			// Index rebuilds catch this later.
			fmt.Fprintf(os.Stderr, "failed to index new profile: %v\n", err)
		}
	}

	return s.buildAuthResponse(user, profile)
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", apperror.ErrUnauthorized)
	}

	return s.buildAuthResponse(user, user.Profile)
}

func (s *authService) buildAuthResponse(user *model.User, profile *model.Profile) (*AuthResponse, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &AuthResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		User:        user,
		Profile:     profile,
	}, nil
}
