package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmissionServiceForTest(subs *fakeSubmissionRepo, types *fakeActivityTypeRepo, users *fakeUserRepo, images *fakeImageStorage) SubmissionService {
	ledger := NewLedgerService(subs, users, time.UTC)
	if images == nil {
		return NewSubmissionService(subs, types, users, ledger, nil, nil, time.Second)
	}
	return NewSubmissionService(subs, types, users, ledger, images, nil, time.Second)
}

func TestLogActivitySnapshotsPointsFromActivityType(t *testing.T) {
	subs := &fakeSubmissionRepo{}
	types := newFakeActivityTypeRepo()
	users := newFakeUserRepo()

	committee := uuid.New()
	volunteer := uuid.New()
	users.addProfile(model.Profile{UserID: volunteer, FullName: "Amina", CommitteeID: &committee})

	caravan := model.ActivityType{ID: uuid.New(), Name: "Caravan", Points: 25}
	types.addType(caravan)

	svc := newSubmissionServiceForTest(subs, types, users, nil)

	submission, err := svc.LogActivity(context.Background(), LogActivityInput{
		VolunteerID:    volunteer,
		ActivityTypeID: caravan.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, submission.PointsAwarded)
	assert.Equal(t, model.SubmissionApproved, submission.Status)
	require.NotNil(t, submission.CommitteeID)
	assert.Equal(t, committee, *submission.CommitteeID)

	// Cached totals refresh from the ledger after the write.
	stored, err := users.FindProfile(context.Background(), volunteer)
	require.NoError(t, err)
	assert.Equal(t, 25, stored.TotalPoints)
	assert.Equal(t, 1, stored.ActivitiesCount)
}

func TestLogActivityActivityTypeCommitteeWins(t *testing.T) {
	subs := &fakeSubmissionRepo{}
	types := newFakeActivityTypeRepo()
	users := newFakeUserRepo()

	profileCommittee := uuid.New()
	typeCommittee := uuid.New()
	volunteer := uuid.New()
	users.addProfile(model.Profile{UserID: volunteer, FullName: "Bassem", CommitteeID: &profileCommittee})
	types.addType(model.ActivityType{ID: uuid.New(), Name: "Media Shift", Points: 10, CommitteeID: &typeCommittee})

	var activityTypeID uuid.UUID
	for id := range types.types {
		activityTypeID = id
	}

	svc := newSubmissionServiceForTest(subs, types, users, nil)

	submission, err := svc.LogActivity(context.Background(), LogActivityInput{
		VolunteerID:    volunteer,
		ActivityTypeID: activityTypeID,
	})
	require.NoError(t, err)
	require.NotNil(t, submission.CommitteeID)
	assert.Equal(t, typeCommittee, *submission.CommitteeID)
}

func TestLogActivityRetriesTransientCreate(t *testing.T) {
	subs := &fakeSubmissionRepo{createErrs: []error{assert.AnError}}
	types := newFakeActivityTypeRepo()
	users := newFakeUserRepo()

	volunteer := uuid.New()
	users.addProfile(model.Profile{UserID: volunteer, FullName: "Carim"})
	shift := model.ActivityType{ID: uuid.New(), Name: "Branch Shift", Points: 10}
	types.addType(shift)

	svc := newSubmissionServiceForTest(subs, types, users, nil)

	_, err := svc.LogActivity(context.Background(), LogActivityInput{
		VolunteerID:    volunteer,
		ActivityTypeID: shift.ID,
	})
	require.NoError(t, err)
	assert.Len(t, subs.submissions, 1)
}

func TestLogActivityCleansUpProofWhenCreateKeepsFailing(t *testing.T) {
	subs := &fakeSubmissionRepo{createErrs: []error{assert.AnError, assert.AnError}}
	types := newFakeActivityTypeRepo()
	users := newFakeUserRepo()
	images := &fakeImageStorage{}

	volunteer := uuid.New()
	users.addProfile(model.Profile{UserID: volunteer, FullName: "Dina"})
	shift := model.ActivityType{ID: uuid.New(), Name: "Branch Shift", Points: 10}
	types.addType(shift)

	svc := newSubmissionServiceForTest(subs, types, users, images)

	_, err := svc.LogActivity(context.Background(), LogActivityInput{
		VolunteerID:    volunteer,
		ActivityTypeID: shift.ID,
		Proof:          strings.NewReader("jpg"),
		ProofName:      "proof.jpg",
	})
	require.Error(t, err)
	assert.Empty(t, subs.submissions)

	// The orphaned upload is removed once the insert gives up.
	require.Len(t, images.uploads, 1)
	assert.Equal(t, images.uploads, images.deleted)
}

func TestLogActivityUnknownActivityType(t *testing.T) {
	subs := &fakeSubmissionRepo{}
	types := newFakeActivityTypeRepo()
	users := newFakeUserRepo()

	volunteer := uuid.New()
	users.addProfile(model.Profile{UserID: volunteer, FullName: "Eman"})

	svc := newSubmissionServiceForTest(subs, types, users, nil)

	_, err := svc.LogActivity(context.Background(), LogActivityInput{
		VolunteerID:    volunteer,
		ActivityTypeID: uuid.New(),
	})
	assert.Error(t, err)
}
