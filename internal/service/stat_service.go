package service

import (
	"context"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/repository"
)

// Overview is the admin dashboard headline block.
type Overview struct {
	Volunteers    int64 `json:"volunteers"`
	Committees    int   `json:"committees"`
	MonthlyPoints int   `json:"monthly_points"`
	MonthlyLogs   int   `json:"monthly_logs"`
}

type StatService interface {
	Overview(ctx context.Context, now time.Time) (*Overview, error)
}

type statService struct {
	userRepo       repository.UserRepository
	committeeRepo  repository.CommitteeRepository
	submissionRepo repository.SubmissionRepository
	loc            *time.Location
}

func NewStatService(userRepo repository.UserRepository, committeeRepo repository.CommitteeRepository, submissionRepo repository.SubmissionRepository, loc *time.Location) StatService {
	if loc == nil {
		loc = time.UTC
	}
	return &statService{
		userRepo:       userRepo,
		committeeRepo:  committeeRepo,
		submissionRepo: submissionRepo,
		loc:            loc,
	}
}

func (s *statService) Overview(ctx context.Context, now time.Time) (*Overview, error) {
	volunteers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	committees, err := s.committeeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	window := ResolveWindow(PeriodMonth, now, s.loc)
	stats, err := s.submissionRepo.WindowStats(ctx, nil, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		Volunteers: volunteers,
		Committees: len(committees),
	}
	for _, st := range stats {
		overview.MonthlyPoints += st.Points
		overview.MonthlyLogs += st.Participations
	}

	return overview, nil
}
