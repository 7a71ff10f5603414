package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/internal/repository"
	"github.com/Omar-0O/rtc-volunteers/pkg/apperror"
	"github.com/google/uuid"
)

// ThresholdCheck is one evaluated badge requirement.
type ThresholdCheck struct {
	Name     string `json:"name"`
	Required int    `json:"required"`
	Actual   int    `json:"actual"`
	Met      bool   `json:"met"`
}

// EligibilityReport is the outcome of checking one volunteer against one
// badge's thresholds. Checks only lists thresholds the badge actually
// sets; Unenforced lists thresholds that are stored but not evaluated.
type EligibilityReport struct {
	Eligible   bool             `json:"eligible"`
	Checks     []ThresholdCheck `json:"checks"`
	Shortfalls []string         `json:"shortfalls,omitempty"`
	Unenforced []string         `json:"unenforced,omitempty"`
}

// BadgeService evaluates and grants badge awards. Eligibility is computed
// from live ledger stats, never from cached profile totals.
type BadgeService interface {
	CheckEligibility(badge *model.Badge, stats VolunteerStats) EligibilityReport
	Preview(ctx context.Context, badgeID, volunteerID uuid.UUID) (*EligibilityReport, error)
	Award(ctx context.Context, badgeID, volunteerID uuid.UUID) (*model.UserBadge, error)
	ListForVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]model.UserBadge, error)
	ListHolders(ctx context.Context, badgeID uuid.UUID) ([]model.Profile, error)
	ListBadges(ctx context.Context) ([]model.Badge, error)
	CreateBadge(ctx context.Context, badge *model.Badge) error
	UpdateBadge(ctx context.Context, badge *model.Badge) error
	DeleteBadge(ctx context.Context, id uuid.UUID) error
}

type badgeService struct {
	badgeRepo repository.BadgeRepository
	userRepo  repository.UserRepository
	ledger    LedgerService
}

func NewBadgeService(badgeRepo repository.BadgeRepository, userRepo repository.UserRepository, ledger LedgerService) BadgeService {
	return &badgeService{badgeRepo: badgeRepo, userRepo: userRepo, ledger: ledger}
}

// CheckEligibility evaluates every threshold the badge sets. A badge with
// no thresholds at all is vacuously awardable.
func (s *badgeService) CheckEligibility(badge *model.Badge, stats VolunteerStats) EligibilityReport {
	report := EligibilityReport{Eligible: true}

	if badge.PointsRequired != nil {
		check := ThresholdCheck{
			Name:     "points",
			Required: *badge.PointsRequired,
			Actual:   stats.TotalPoints,
			Met:      stats.TotalPoints >= *badge.PointsRequired,
		}
		report.Checks = append(report.Checks, check)
		if !check.Met {
			report.Eligible = false
			report.Shortfalls = append(report.Shortfalls,
				fmt.Sprintf("Volunteer needs %d points, but has only %d", check.Required, check.Actual))
		}
	}

	if badge.ActivitiesRequired != nil {
		check := ThresholdCheck{
			Name:     "activities",
			Required: *badge.ActivitiesRequired,
			Actual:   stats.ApprovedActivities,
			Met:      stats.ApprovedActivities >= *badge.ActivitiesRequired,
		}
		report.Checks = append(report.Checks, check)
		if !check.Met {
			report.Eligible = false
			report.Shortfalls = append(report.Shortfalls,
				fmt.Sprintf("Volunteer needs %d activities, but has only %d", check.Required, check.Actual))
		}
	}

	if badge.MonthsRequired != nil {
		report.Unenforced = append(report.Unenforced, "months_required")
	}
	if badge.CaravansRequired != nil {
		report.Unenforced = append(report.Unenforced, "caravans_required")
	}

	return report
}

func (s *badgeService) Preview(ctx context.Context, badgeID, volunteerID uuid.UUID) (*EligibilityReport, error) {
	badge, err := s.badgeRepo.FindByID(ctx, badgeID)
	if err != nil {
		return nil, err
	}

	stats, err := s.ledger.VolunteerStats(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	report := s.CheckEligibility(badge, stats)
	return &report, nil
}

// Award grants the badge after a fresh eligibility check. The composite
// unique index in user_badges is the last line of defense against double
// awards; the repository maps that violation to ErrDuplicateAward.
func (s *badgeService) Award(ctx context.Context, badgeID, volunteerID uuid.UUID) (*model.UserBadge, error) {
	badge, err := s.badgeRepo.FindByID(ctx, badgeID)
	if err != nil {
		return nil, err
	}

	stats, err := s.ledger.VolunteerStats(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	report := s.CheckEligibility(badge, stats)
	if !report.Eligible {
		msg := "volunteer does not meet the badge requirements"
		if len(report.Shortfalls) > 0 {
			msg = report.Shortfalls[0]
		}
		return nil, fmt.Errorf("%w: %s", apperror.ErrBadRequest, msg)
	}

	var awarded *model.UserBadge
	err = withRetry(ctx, func() error {
		var awardErr error
		awarded, awardErr = s.badgeRepo.Award(ctx, volunteerID, badgeID)
		return awardErr
	})
	if err != nil {
		return nil, err
	}

	awarded.Badge = badge
	return awarded, nil
}

func (s *badgeService) ListForVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]model.UserBadge, error) {
	return s.badgeRepo.ListForUser(ctx, volunteerID)
}

// ListHolders returns the profiles of every volunteer holding the badge.
func (s *badgeService) ListHolders(ctx context.Context, badgeID uuid.UUID) ([]model.Profile, error) {
	holderIDs, err := s.badgeRepo.ListHolders(ctx, badgeID)
	if err != nil {
		return nil, err
	}
	if len(holderIDs) == 0 {
		return nil, nil
	}
	return s.userRepo.FindProfilesByIDs(ctx, holderIDs)
}

func (s *badgeService) ListBadges(ctx context.Context) ([]model.Badge, error) {
	return s.badgeRepo.FindAll(ctx)
}

func (s *badgeService) CreateBadge(ctx context.Context, badge *model.Badge) error {
	return s.badgeRepo.Create(ctx, badge)
}

func (s *badgeService) UpdateBadge(ctx context.Context, badge *model.Badge) error {
	return s.badgeRepo.Update(ctx, badge)
}

func (s *badgeService) DeleteBadge(ctx context.Context, id uuid.UUID) error {
	return s.badgeRepo.Delete(ctx, id)
}

// withRetry retries a write once on transient store failures. Domain
// errors pass through unchanged so a duplicate award is never retried
// into a second insert attempt.
func withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = op()
		if err == nil || !isTransient(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(150 * time.Millisecond):
		}
	}
	return fmt.Errorf("%w: %v", apperror.ErrTransientStore, err)
}

func isTransient(err error) bool {
	switch {
	case errors.Is(err, apperror.ErrDuplicateAward),
		errors.Is(err, apperror.ErrNotFound),
		errors.Is(err, apperror.ErrBadRequest),
		errors.Is(err, apperror.ErrInvalidInput),
		errors.Is(err, apperror.ErrForbidden),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}
