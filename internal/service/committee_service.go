package service

import (
	"context"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/internal/repository"
	"github.com/google/uuid"
)

// CommitteeStats is a committee's activity summary over one period.
type CommitteeStats struct {
	Committee     *model.Committee `json:"committee"`
	Members       int64            `json:"members"`
	Points        int              `json:"points"`
	Contributions int64            `json:"contributions"`
}

type CommitteeService interface {
	List(ctx context.Context) ([]model.Committee, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Committee, error)
	Create(ctx context.Context, committee *model.Committee) error
	Update(ctx context.Context, committee *model.Committee) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, id uuid.UUID, period Period, now time.Time) (*CommitteeStats, error)
}

type committeeService struct {
	committeeRepo  repository.CommitteeRepository
	submissionRepo repository.SubmissionRepository
	loc            *time.Location
}

func NewCommitteeService(committeeRepo repository.CommitteeRepository, submissionRepo repository.SubmissionRepository, loc *time.Location) CommitteeService {
	if loc == nil {
		loc = time.UTC
	}
	return &committeeService{
		committeeRepo:  committeeRepo,
		submissionRepo: submissionRepo,
		loc:            loc,
	}
}

func (s *committeeService) List(ctx context.Context) ([]model.Committee, error) {
	return s.committeeRepo.FindAll(ctx)
}

func (s *committeeService) Get(ctx context.Context, id uuid.UUID) (*model.Committee, error) {
	return s.committeeRepo.FindByID(ctx, id)
}

func (s *committeeService) Create(ctx context.Context, committee *model.Committee) error {
	return s.committeeRepo.Create(ctx, committee)
}

func (s *committeeService) Update(ctx context.Context, committee *model.Committee) error {
	return s.committeeRepo.Update(ctx, committee)
}

func (s *committeeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.committeeRepo.Delete(ctx, id)
}

func (s *committeeService) Stats(ctx context.Context, id uuid.UUID, period Period, now time.Time) (*CommitteeStats, error) {
	committee, err := s.committeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	window := ResolveWindow(period, now, s.loc)
	points, contributions, err := s.submissionRepo.CommitteeWindowTotals(ctx, id, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	members, err := s.committeeRepo.CountMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	return &CommitteeStats{
		Committee:     committee,
		Members:       members,
		Points:        points,
		Contributions: contributions,
	}, nil
}
