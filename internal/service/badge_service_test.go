package service

import (
	"context"
	"testing"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestCheckEligibilityNoThresholdsIsVacuouslyEligible(t *testing.T) {
	svc := NewBadgeService(newFakeBadgeRepo(), newFakeUserRepo(), nil).(*badgeService)

	report := svc.CheckEligibility(&model.Badge{Name: "Founder"}, VolunteerStats{})
	assert.True(t, report.Eligible)
	assert.Empty(t, report.Checks)
	assert.Empty(t, report.Shortfalls)
}

func TestCheckEligibilityPointsShortfall(t *testing.T) {
	svc := NewBadgeService(newFakeBadgeRepo(), newFakeUserRepo(), nil).(*badgeService)

	badge := &model.Badge{Name: "Centurion", PointsRequired: intPtr(100)}
	report := svc.CheckEligibility(badge, VolunteerStats{TotalPoints: 40})

	assert.False(t, report.Eligible)
	require.Len(t, report.Shortfalls, 1)
	assert.Equal(t, "Volunteer needs 100 points, but has only 40", report.Shortfalls[0])
}

func TestCheckEligibilityBothThresholds(t *testing.T) {
	svc := NewBadgeService(newFakeBadgeRepo(), newFakeUserRepo(), nil).(*badgeService)

	badge := &model.Badge{
		Name:               "Workhorse",
		PointsRequired:     intPtr(50),
		ActivitiesRequired: intPtr(10),
	}

	report := svc.CheckEligibility(badge, VolunteerStats{TotalPoints: 60, ApprovedActivities: 4})
	assert.False(t, report.Eligible)
	require.Len(t, report.Checks, 2)
	assert.True(t, report.Checks[0].Met)
	assert.False(t, report.Checks[1].Met)
	require.Len(t, report.Shortfalls, 1)
	assert.Equal(t, "Volunteer needs 10 activities, but has only 4", report.Shortfalls[0])

	report = svc.CheckEligibility(badge, VolunteerStats{TotalPoints: 50, ApprovedActivities: 10})
	assert.True(t, report.Eligible, "thresholds are met inclusively")
}

func TestCheckEligibilityReportsUnenforcedThresholds(t *testing.T) {
	svc := NewBadgeService(newFakeBadgeRepo(), newFakeUserRepo(), nil).(*badgeService)

	badge := &model.Badge{
		Name:             "Veteran",
		MonthsRequired:   intPtr(6),
		CaravansRequired: intPtr(3),
	}
	report := svc.CheckEligibility(badge, VolunteerStats{})

	assert.True(t, report.Eligible, "unenforced thresholds never block an award")
	assert.Equal(t, []string{"months_required", "caravans_required"}, report.Unenforced)
}

func newBadgeServiceWithStats(t *testing.T, badges *fakeBadgeRepo, volunteer uuid.UUID, points, activities int) BadgeService {
	t.Helper()

	subs := &fakeSubmissionRepo{}
	now := time.Now()
	for i := 0; i < activities; i++ {
		per := points / activities
		if i == 0 {
			per += points % activities
		}
		subs.submissions = append(subs.submissions, submissionAt(volunteer, per, now))
	}

	ledger := NewLedgerService(subs, newFakeUserRepo(), time.UTC)
	return NewBadgeService(badges, newFakeUserRepo(), ledger)
}

func TestAwardGrantsWhenEligible(t *testing.T) {
	badges := newFakeBadgeRepo()
	badge := &model.Badge{Name: "Centurion", PointsRequired: intPtr(100)}
	require.NoError(t, badges.Create(context.Background(), badge))

	volunteer := uuid.New()
	svc := newBadgeServiceWithStats(t, badges, volunteer, 120, 4)

	awarded, err := svc.Award(context.Background(), badge.ID, volunteer)
	require.NoError(t, err)
	assert.Equal(t, volunteer, awarded.UserID)
	assert.Equal(t, badge.ID, awarded.BadgeID)
	require.NotNil(t, awarded.Badge)
	assert.Equal(t, "Centurion", awarded.Badge.Name)
}

func TestAwardRejectsIneligibleWithShortfallMessage(t *testing.T) {
	badges := newFakeBadgeRepo()
	badge := &model.Badge{Name: "Centurion", PointsRequired: intPtr(100)}
	require.NoError(t, badges.Create(context.Background(), badge))

	volunteer := uuid.New()
	svc := newBadgeServiceWithStats(t, badges, volunteer, 30, 2)

	_, err := svc.Award(context.Background(), badge.ID, volunteer)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
	assert.Contains(t, err.Error(), "needs 100 points, but has only 30")
}

func TestAwardTwiceReturnsDuplicateAward(t *testing.T) {
	badges := newFakeBadgeRepo()
	badge := &model.Badge{Name: "Founder"}
	require.NoError(t, badges.Create(context.Background(), badge))

	volunteer := uuid.New()
	svc := newBadgeServiceWithStats(t, badges, volunteer, 10, 1)

	_, err := svc.Award(context.Background(), badge.ID, volunteer)
	require.NoError(t, err)

	_, err = svc.Award(context.Background(), badge.ID, volunteer)
	assert.ErrorIs(t, err, apperror.ErrDuplicateAward)
	assert.Len(t, badges.awards, 1, "the duplicate attempt must not insert")
}

func TestAwardRetriesTransientFailureOnce(t *testing.T) {
	badges := newFakeBadgeRepo()
	badge := &model.Badge{Name: "Founder"}
	require.NoError(t, badges.Create(context.Background(), badge))
	badges.awardErrs = []error{assert.AnError}

	volunteer := uuid.New()
	svc := newBadgeServiceWithStats(t, badges, volunteer, 10, 1)

	awarded, err := svc.Award(context.Background(), badge.ID, volunteer)
	require.NoError(t, err, "a single transient failure is retried")
	assert.Equal(t, volunteer, awarded.UserID)
}

func TestAwardUnknownBadge(t *testing.T) {
	svc := newBadgeServiceWithStats(t, newFakeBadgeRepo(), uuid.New(), 0, 0)
	_, err := svc.Award(context.Background(), uuid.New(), uuid.New())
	assert.Error(t, err)
}
