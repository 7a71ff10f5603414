package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/internal/repository"
	"github.com/Omar-0O/rtc-volunteers/pkg/apperror"
	"github.com/Omar-0O/rtc-volunteers/pkg/storage"
	"github.com/google/uuid"
)

// Dashboard is the volunteer home screen payload. Point figures come from
// the ledger, not the cached profile columns.
type Dashboard struct {
	Profile       *model.Profile             `json:"profile"`
	Level         model.LevelMeta            `json:"level"`
	Progress      model.LevelProgress        `json:"progress"`
	TotalPoints   int                        `json:"total_points"`
	MonthlyPoints int                        `json:"monthly_points"`
	Rank          int                        `json:"rank"`
	Badges        []model.UserBadge          `json:"badges"`
	Recent        []model.ActivitySubmission `json:"recent_activities"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, fullName string, fullNameAr, phone *string) (*model.Profile, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatar io.Reader, fileName string) (*model.Profile, error)
}

type profileService struct {
	userRepo     repository.UserRepository
	ledger       LedgerService
	leaderboard  LeaderboardService
	badges       BadgeService
	submissions  SubmissionService
	search       SearchService
	imageStorage storage.ImageStorage
	loc          *time.Location
}

func NewProfileService(
	userRepo repository.UserRepository,
	ledger LedgerService,
	leaderboard LeaderboardService,
	badges BadgeService,
	submissions SubmissionService,
	search SearchService,
	imageStorage storage.ImageStorage,
	loc *time.Location,
) ProfileService {
	if loc == nil {
		loc = time.UTC
	}
	return &profileService{
		userRepo:     userRepo,
		ledger:       ledger,
		leaderboard:  leaderboard,
		badges:       badges,
		submissions:  submissions,
		search:       search,
		imageStorage: imageStorage,
		loc:          loc,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	return s.userRepo.FindProfile(ctx, userID)
}

// GetDashboard assembles the dashboard with the independent reads running
// concurrently. The first error wins; later ones are dropped.
func (s *profileService) GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	profile, err := s.userRepo.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(s.loc)
	dash := &Dashboard{
		Profile: profile,
		Level:   model.MetaForLevel(profile.Level),
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(5)
	go func() {
		defer wg.Done()
		total, err := s.ledger.TotalImpact(ctx, userID)
		if err != nil {
			fail(err)
			return
		}
		dash.TotalPoints = total
		dash.Progress = model.ProgressToward(total)
	}()
	go func() {
		defer wg.Done()
		monthly, err := s.ledger.MonthlyImpact(ctx, userID, now)
		if err != nil {
			fail(err)
			return
		}
		dash.MonthlyPoints = monthly
	}()
	go func() {
		defer wg.Done()
		badges, err := s.badges.ListForVolunteer(ctx, userID)
		if err != nil {
			fail(err)
			return
		}
		dash.Badges = badges
	}()
	go func() {
		defer wg.Done()
		recent, err := s.submissions.ListRecent(ctx, userID, 10)
		if err != nil {
			fail(err)
			return
		}
		dash.Recent = recent
	}()
	go func() {
		defer wg.Done()
		rank, err := s.leaderboard.RankOf(ctx, userID, PeriodAllTime, now)
		if err != nil {
			fail(err)
			return
		}
		dash.Rank = rank
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return dash, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName string, fullNameAr, phone *string) (*model.Profile, error) {
	profile, err := s.userRepo.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if fullName != "" {
		profile.FullName = fullName
	}
	if fullNameAr != nil {
		profile.FullNameAr = fullNameAr
	}
	if phone != nil {
		profile.Phone = phone
	}

	if err := s.userRepo.Update(ctx, nil, profile); err != nil {
		return nil, err
	}

	if s.search != nil {
		_ = s.search.IndexProfile(profile)
	}

	return profile, nil
}

// UpdateAvatar uploads a new avatar image and swaps it into the profile.
// The previous avatar is removed from storage once the new one is saved.
func (s *profileService) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatar io.Reader, fileName string) (*model.Profile, error) {
	if s.imageStorage == nil {
		return nil, fmt.Errorf("%w: image storage is not configured", apperror.ErrInternal)
	}

	profile, err := s.userRepo.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	avatarURL, err := s.imageStorage.Upload(ctx, avatar, storage.FolderAvatars, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar image: %w", err)
	}

	previous := profile.AvatarURL
	profile.AvatarURL = &avatarURL

	if err := s.userRepo.Update(ctx, nil, profile); err != nil {
		// The upload is orphaned if the save fails.
		if delErr := s.imageStorage.Delete(ctx, avatarURL); delErr != nil {
			log.Printf("failed to clean up avatar upload: %v", delErr)
		}
		return nil, err
	}

	if previous != nil {
		if delErr := s.imageStorage.Delete(ctx, *previous); delErr != nil {
			log.Printf("failed to remove old avatar for %s: %v", userID, delErr)
		}
	}

	return profile, nil
}
