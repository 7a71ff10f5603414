package repository

import (
	"context"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WindowStat is one volunteer's aggregated standing inside a time window.
// Points are clamped per entry (GREATEST(points_awarded, 0)) so a negative
// row contributes nothing rather than subtracting.
type WindowStat struct {
	VolunteerID    uuid.UUID
	Points         int
	Participations int
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.ActivitySubmission) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ActivitySubmission, error)
	ListByVolunteer(ctx context.Context, volunteerID uuid.UUID, excludeFines bool) ([]model.ActivitySubmission, error)
	ListRecent(ctx context.Context, volunteerID uuid.UUID, limit int) ([]model.ActivitySubmission, error)
	CountApprovedActivities(ctx context.Context, volunteerID uuid.UUID) (int64, error)
	WindowStats(ctx context.Context, committeeID *uuid.UUID, start, end *time.Time) ([]WindowStat, error)
	CommitteeWindowTotals(ctx context.Context, committeeID uuid.UUID, start, end *time.Time) (points int, participations int64, err error)
	ListVestViolations(ctx context.Context, volunteerID uuid.UUID) ([]model.ActivitySubmission, error)
	SetWoreVest(ctx context.Context, id uuid.UUID, woreVest bool) error
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *model.ActivitySubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ActivitySubmission, error) {
	var submission model.ActivitySubmission
	if err := r.db.WithContext(ctx).
		Preload("ActivityType").
		Where("id = ?", id).
		First(&submission).Error; err != nil {
		return nil, err
	}

	return &submission, nil
}

func (r *submissionRepository) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID, excludeFines bool) ([]model.ActivitySubmission, error) {
	q := r.db.WithContext(ctx).
		Preload("ActivityType").
		Where("volunteer_id = ?", volunteerID)
	if excludeFines {
		q = q.Where("fine_type_id IS NULL")
	}

	var submissions []model.ActivitySubmission
	if err := q.Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) ListRecent(ctx context.Context, volunteerID uuid.UUID, limit int) ([]model.ActivitySubmission, error) {
	var submissions []model.ActivitySubmission
	if err := r.db.WithContext(ctx).
		Preload("ActivityType").
		Where("volunteer_id = ? AND fine_type_id IS NULL", volunteerID).
		Order("submitted_at DESC").
		Limit(limit).
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) CountApprovedActivities(ctx context.Context, volunteerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ActivitySubmission{}).
		Where("volunteer_id = ? AND status = ? AND fine_type_id IS NULL", volunteerID, model.SubmissionApproved).
		Count(&count).Error
	return count, err
}

func (r *submissionRepository) WindowStats(ctx context.Context, committeeID *uuid.UUID, start, end *time.Time) ([]WindowStat, error) {
	q := r.db.WithContext(ctx).Model(&model.ActivitySubmission{}).
		Select("volunteer_id, SUM(GREATEST(points_awarded, 0)) AS points, COUNT(*) AS participations").
		Where("status = ?", model.SubmissionApproved).
		Where("fine_type_id IS NULL")

	if committeeID != nil {
		q = q.Where("committee_id = ?", *committeeID)
	}
	if start != nil {
		q = q.Where("submitted_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("submitted_at <= ?", *end)
	}

	var stats []WindowStat
	if err := q.Group("volunteer_id").Scan(&stats).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *submissionRepository) CommitteeWindowTotals(ctx context.Context, committeeID uuid.UUID, start, end *time.Time) (int, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ActivitySubmission{}).
		Where("committee_id = ? AND status = ? AND fine_type_id IS NULL", committeeID, model.SubmissionApproved)
	if start != nil {
		q = q.Where("submitted_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("submitted_at <= ?", *end)
	}

	var row struct {
		Points         int
		Participations int64
	}
	if err := q.Select("COALESCE(SUM(GREATEST(points_awarded, 0)), 0) AS points, COUNT(*) AS participations").
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}

	return row.Points, row.Participations, nil
}

func (r *submissionRepository) ListVestViolations(ctx context.Context, volunteerID uuid.UUID) ([]model.ActivitySubmission, error) {
	var submissions []model.ActivitySubmission
	if err := r.db.WithContext(ctx).
		Where("volunteer_id = ? AND location = ? AND wore_vest = ?", volunteerID, model.LocationBranch, false).
		Order("submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) SetWoreVest(ctx context.Context, id uuid.UUID, woreVest bool) error {
	return r.db.WithContext(ctx).Model(&model.ActivitySubmission{}).
		Where("id = ?", id).
		Update("wore_vest", woreVest).Error
}
