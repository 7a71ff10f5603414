package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/internal/repository"
	"github.com/Omar-0O/rtc-volunteers/pkg/apperror"
	"github.com/Omar-0O/rtc-volunteers/pkg/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LogActivityInput carries one activity log request. Proof is optional; a
// nil reader skips the upload.
type LogActivityInput struct {
	VolunteerID    uuid.UUID
	ActivityTypeID uuid.UUID
	Description    *string
	Location       *string
	WoreVest       *bool
	RecordedBy     *uuid.UUID
	Proof          io.Reader
	ProofName      string
}

// SubmissionService records and lists activity submissions.
type SubmissionService interface {
	LogActivity(ctx context.Context, in LogActivityInput) (*model.ActivitySubmission, error)
	ListMySubmissions(ctx context.Context, volunteerID uuid.UUID) ([]model.ActivitySubmission, error)
	ListRecent(ctx context.Context, volunteerID uuid.UUID, limit int) ([]model.ActivitySubmission, error)

	ListActivityTypes(ctx context.Context, committeeID *uuid.UUID) ([]model.ActivityType, error)
	CreateActivityType(ctx context.Context, activityType *model.ActivityType) error
	UpdateActivityType(ctx context.Context, activityType *model.ActivityType) error
	DeleteActivityType(ctx context.Context, id uuid.UUID) error
}

type submissionService struct {
	submissionRepo   repository.SubmissionRepository
	activityTypeRepo repository.ActivityTypeRepository
	userRepo         repository.UserRepository
	ledger           LedgerService
	imageStorage     storage.ImageStorage
	redisClient      *redis.Client
	rateLimit        time.Duration
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	activityTypeRepo repository.ActivityTypeRepository,
	userRepo repository.UserRepository,
	ledger LedgerService,
	imageStorage storage.ImageStorage,
	redisClient *redis.Client,
	rateLimit time.Duration,
) SubmissionService {
	return &submissionService{
		submissionRepo:   submissionRepo,
		activityTypeRepo: activityTypeRepo,
		userRepo:         userRepo,
		ledger:           ledger,
		imageStorage:     imageStorage,
		redisClient:      redisClient,
		rateLimit:        rateLimit,
	}
}

// LogActivity records an approved submission with the activity type's
// current point value snapshotted in. Repeated logging is throttled per
// volunteer through redis.
func (s *submissionService) LogActivity(ctx context.Context, in LogActivityInput) (*model.ActivitySubmission, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, in.VolunteerID, ActionLogActivity, s.rateLimit)
	if err != nil {
		log.Printf("rate limit check failed for %s: %v", in.VolunteerID, err)
	} else if !allowed {
		msg := "please wait before logging another activity"
		if ttl, ttlErr := GetRateLimitTTL(ctx, s.redisClient, in.VolunteerID, ActionLogActivity); ttlErr == nil && ttl > 0 {
			msg = fmt.Sprintf("try again in %d seconds", int(ttl.Round(time.Second).Seconds()))
		}
		return nil, fmt.Errorf("%w: %s", apperror.ErrRateLimitExceeded, msg)
	}

	activityType, err := s.activityTypeRepo.FindByID(ctx, in.ActivityTypeID)
	if err != nil {
		s.releaseRateLimit(ctx, in.VolunteerID)
		return nil, err
	}

	profile, err := s.userRepo.FindProfile(ctx, in.VolunteerID)
	if err != nil {
		s.releaseRateLimit(ctx, in.VolunteerID)
		return nil, err
	}

	submission := &model.ActivitySubmission{
		VolunteerID:    in.VolunteerID,
		ActivityTypeID: activityType.ID,
		CommitteeID:    profile.CommitteeID,
		PointsAwarded:  activityType.Points,
		Status:         model.SubmissionApproved,
		Description:    in.Description,
		Location:       in.Location,
		WoreVest:       in.WoreVest,
		RecordedBy:     in.RecordedBy,
	}
	if activityType.CommitteeID != nil {
		submission.CommitteeID = activityType.CommitteeID
	}

	if in.Proof != nil && s.imageStorage != nil {
		proofURL, err := s.imageStorage.Upload(ctx, in.Proof, storage.FolderProofs, in.ProofName)
		if err != nil {
			s.releaseRateLimit(ctx, in.VolunteerID)
			return nil, fmt.Errorf("failed to upload proof image: %w", err)
		}
		submission.ProofURL = &proofURL
	}

	if err := withRetry(ctx, func() error {
		return s.submissionRepo.Create(ctx, submission)
	}); err != nil {
		// The upload is orphaned if the insert fails for good.
		if submission.ProofURL != nil && s.imageStorage != nil {
			if delErr := s.imageStorage.Delete(ctx, *submission.ProofURL); delErr != nil {
				log.Printf("failed to clean up proof upload: %v", delErr)
			}
		}
		s.releaseRateLimit(ctx, in.VolunteerID)
		return nil, err
	}

	// Cached totals refresh best-effort; the ledger stays authoritative.
	if err := s.ledger.RecomputeProfileTotals(ctx, in.VolunteerID); err != nil {
		log.Printf("failed to refresh cached totals for %s: %v", in.VolunteerID, err)
	}

	submission.ActivityType = activityType
	return submission, nil
}

// releaseRateLimit frees the throttle slot when logging fails after the
// limit was already consumed, so the volunteer can retry right away.
func (s *submissionService) releaseRateLimit(ctx context.Context, volunteerID uuid.UUID) {
	if err := ClearRateLimit(ctx, s.redisClient, volunteerID, ActionLogActivity); err != nil {
		log.Printf("failed to release rate limit for %s: %v", volunteerID, err)
	}
}

func (s *submissionService) ListMySubmissions(ctx context.Context, volunteerID uuid.UUID) ([]model.ActivitySubmission, error) {
	return s.submissionRepo.ListByVolunteer(ctx, volunteerID, true)
}

func (s *submissionService) ListRecent(ctx context.Context, volunteerID uuid.UUID, limit int) ([]model.ActivitySubmission, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.submissionRepo.ListRecent(ctx, volunteerID, limit)
}

func (s *submissionService) ListActivityTypes(ctx context.Context, committeeID *uuid.UUID) ([]model.ActivityType, error) {
	return s.activityTypeRepo.FindAll(ctx, committeeID)
}

func (s *submissionService) CreateActivityType(ctx context.Context, activityType *model.ActivityType) error {
	return s.activityTypeRepo.Create(ctx, activityType)
}

func (s *submissionService) UpdateActivityType(ctx context.Context, activityType *model.ActivityType) error {
	return s.activityTypeRepo.Update(ctx, activityType)
}

func (s *submissionService) DeleteActivityType(ctx context.Context, id uuid.UUID) error {
	return s.activityTypeRepo.Delete(ctx, id)
}
