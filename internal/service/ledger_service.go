package service

import (
	"context"
	"log"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/internal/repository"
	"github.com/google/uuid"
)

// VolunteerStats is the live, ledger-derived standing of a volunteer. Badge
// checks and leaderboards use these figures, never the cached profile
// fields.
type VolunteerStats struct {
	TotalPoints        int `json:"total_points"`
	ApprovedActivities int `json:"approved_activities"`
}

// LedgerService derives point balances from the submissions ledger. The
// cached profiles.total_points / activities_count columns are refreshed
// from here; the ledger is the source of truth.
type LedgerService interface {
	TotalImpact(ctx context.Context, volunteerID uuid.UUID) (int, error)
	MonthlyImpact(ctx context.Context, volunteerID uuid.UUID, now time.Time) (int, error)
	VolunteerStats(ctx context.Context, volunteerID uuid.UUID) (VolunteerStats, error)
	RecomputeProfileTotals(ctx context.Context, volunteerID uuid.UUID) error
	RecomputeAllProfileTotals(ctx context.Context) error
}

type ledgerService struct {
	submissionRepo repository.SubmissionRepository
	userRepo       repository.UserRepository
	loc            *time.Location
}

func NewLedgerService(submissionRepo repository.SubmissionRepository, userRepo repository.UserRepository, loc *time.Location) LedgerService {
	if loc == nil {
		loc = time.UTC
	}
	return &ledgerService{
		submissionRepo: submissionRepo,
		userRepo:       userRepo,
		loc:            loc,
	}
}

// impactOf sums a submission set with the per-entry non-negative clamp.
// Negative entries contribute zero instead of subtracting, so a total can
// never go below zero. Only approved, non-fine rows count.
func impactOf(submissions []model.ActivitySubmission, within func(time.Time) bool) int {
	total := 0
	for _, s := range submissions {
		if s.Status != model.SubmissionApproved || s.IsFine() {
			continue
		}
		if within != nil && !within(s.SubmittedAt) {
			continue
		}
		if s.PointsAwarded > 0 {
			total += s.PointsAwarded
		}
	}
	return total
}

func (s *ledgerService) TotalImpact(ctx context.Context, volunteerID uuid.UUID) (int, error) {
	submissions, err := s.submissionRepo.ListByVolunteer(ctx, volunteerID, true)
	if err != nil {
		return 0, err
	}

	return impactOf(submissions, nil), nil
}

func (s *ledgerService) MonthlyImpact(ctx context.Context, volunteerID uuid.UUID, now time.Time) (int, error) {
	submissions, err := s.submissionRepo.ListByVolunteer(ctx, volunteerID, true)
	if err != nil {
		return 0, err
	}

	now = now.In(s.loc)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	window := Window{Start: &start, End: &now}

	return impactOf(submissions, window.Contains), nil
}

func (s *ledgerService) VolunteerStats(ctx context.Context, volunteerID uuid.UUID) (VolunteerStats, error) {
	submissions, err := s.submissionRepo.ListByVolunteer(ctx, volunteerID, true)
	if err != nil {
		return VolunteerStats{}, err
	}

	count, err := s.submissionRepo.CountApprovedActivities(ctx, volunteerID)
	if err != nil {
		return VolunteerStats{}, err
	}

	return VolunteerStats{
		TotalPoints:        impactOf(submissions, nil),
		ApprovedActivities: int(count),
	}, nil
}

func (s *ledgerService) RecomputeProfileTotals(ctx context.Context, volunteerID uuid.UUID) error {
	stats, err := s.VolunteerStats(ctx, volunteerID)
	if err != nil {
		return err
	}

	return s.userRepo.UpdateProfileTotals(ctx, volunteerID, stats.TotalPoints, stats.ApprovedActivities)
}

// RecomputeAllProfileTotals reconciles every cached profile total against
// the ledger. Runs from the background job; individual failures are logged
// and skipped so one bad row doesn't stall the sweep.
func (s *ledgerService) RecomputeAllProfileTotals(ctx context.Context) error {
	profiles, err := s.userRepo.FindProfiles(ctx, nil)
	if err != nil {
		return err
	}

	for _, p := range profiles {
		if err := s.RecomputeProfileTotals(ctx, p.UserID); err != nil {
			log.Printf("failed to recompute totals for volunteer %s: %v", p.UserID, err)
		}
	}

	return nil
}
