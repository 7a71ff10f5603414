package service

import (
	"context"
	"testing"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLeaderboard(t *testing.T) (*fakeSubmissionRepo, *fakeUserRepo, [3]uuid.UUID) {
	t.Helper()

	var ids [3]uuid.UUID
	for i := range ids {
		ids[i] = uuid.New()
	}

	users := newFakeUserRepo()
	users.addProfile(model.Profile{UserID: ids[0], FullName: "Amina", Level: "responsible"})
	users.addProfile(model.Profile{UserID: ids[1], FullName: "Bassem", Level: "under_follow_up"})
	users.addProfile(model.Profile{UserID: ids[2], FullName: "Carim", Level: "under_follow_up"})

	now := time.Now()
	repo := &fakeSubmissionRepo{submissions: []model.ActivitySubmission{
		submissionAt(ids[0], 30, now),
		submissionAt(ids[1], 10, now),
		submissionAt(ids[1], 10, now),
		submissionAt(ids[2], 20, now),
	}}

	return repo, users, ids
}

func TestRankOrdersByPointsWithPositionalRanks(t *testing.T) {
	repo, users, ids := seedLeaderboard(t)
	svc := NewLeaderboardService(repo, users, nil, 0, time.UTC)

	entries, err := svc.Rank(context.Background(), PeriodAllTime, nil, time.Now())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, ids[0], entries[0].VolunteerID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 30, entries[0].Points)

	// Bassem and Carim both hold 20 points; Bassem has more
	// participations so he ranks ahead.
	assert.Equal(t, ids[1], entries[1].VolunteerID)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, ids[2], entries[2].VolunteerID)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestRankBreaksFullTiesByName(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	users := newFakeUserRepo()
	users.addProfile(model.Profile{UserID: a, FullName: "zaid"})
	users.addProfile(model.Profile{UserID: b, FullName: "Adel"})

	now := time.Now()
	repo := &fakeSubmissionRepo{submissions: []model.ActivitySubmission{
		submissionAt(a, 10, now),
		submissionAt(b, 10, now),
	}}
	svc := NewLeaderboardService(repo, users, nil, 0, time.UTC)

	entries, err := svc.Rank(context.Background(), PeriodAllTime, nil, time.Now())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Adel", entries[0].Name.EN, "name tie-break is case-insensitive ascending")
	assert.Equal(t, "zaid", entries[1].Name.EN)
}

func TestPodiumDisplayOrder(t *testing.T) {
	repo, users, ids := seedLeaderboard(t)
	svc := NewLeaderboardService(repo, users, nil, 0, time.UTC)

	podium, err := svc.Podium(context.Background(), PeriodAllTime, nil, time.Now())
	require.NoError(t, err)
	require.Len(t, podium, 3)

	// Second place, first place, third place.
	assert.Equal(t, 2, podium[0].Rank)
	assert.Equal(t, 1, podium[1].Rank)
	assert.Equal(t, 3, podium[2].Rank)
	assert.Equal(t, ids[0], podium[1].VolunteerID)
}

func TestPodiumWithFewerThanThree(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	users := newFakeUserRepo()
	users.addProfile(model.Profile{UserID: a, FullName: "Amina"})
	users.addProfile(model.Profile{UserID: b, FullName: "Bassem"})

	now := time.Now()
	repo := &fakeSubmissionRepo{submissions: []model.ActivitySubmission{
		submissionAt(a, 20, now),
		submissionAt(b, 10, now),
	}}
	svc := NewLeaderboardService(repo, users, nil, 0, time.UTC)

	podium, err := svc.Podium(context.Background(), PeriodAllTime, nil, time.Now())
	require.NoError(t, err)
	require.Len(t, podium, 2)
	assert.Equal(t, 2, podium[0].Rank)
	assert.Equal(t, 1, podium[1].Rank)

	empty, err := svc.Podium(context.Background(), PeriodWeek, nil, time.Now().AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFilterByLevelKeepsPreFilterRanks(t *testing.T) {
	repo, users, ids := seedLeaderboard(t)
	svc := NewLeaderboardService(repo, users, nil, 0, time.UTC)

	entries, err := svc.Rank(context.Background(), PeriodAllTime, nil, time.Now())
	require.NoError(t, err)

	filtered := svc.FilterByLevel(entries, "under_follow_up")
	require.Len(t, filtered, 2)
	assert.Equal(t, ids[1], filtered[0].VolunteerID)
	assert.Equal(t, 2, filtered[0].Rank, "ranks survive the filter, gaps are expected")
	assert.Equal(t, 3, filtered[1].Rank)

	// Legacy alias selects the same tier.
	viaAlias := svc.FilterByLevel(entries, "bronze")
	assert.Equal(t, filtered, viaAlias)
}

func TestRankScopedToCommittee(t *testing.T) {
	committee := uuid.New()
	a, b := uuid.New(), uuid.New()

	users := newFakeUserRepo()
	users.addProfile(model.Profile{UserID: a, FullName: "Amina", CommitteeID: &committee})
	users.addProfile(model.Profile{UserID: b, FullName: "Bassem"})

	now := time.Now()
	inCommittee := submissionAt(a, 5, now)
	inCommittee.CommitteeID = &committee
	repo := &fakeSubmissionRepo{submissions: []model.ActivitySubmission{
		inCommittee,
		submissionAt(b, 50, now),
	}}
	svc := NewLeaderboardService(repo, users, nil, 0, time.UTC)

	entries, err := svc.Rank(context.Background(), PeriodAllTime, &committee, time.Now())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, a, entries[0].VolunteerID)
	assert.Equal(t, 1, entries[0].Rank)
}

func TestRankOf(t *testing.T) {
	repo, users, ids := seedLeaderboard(t)
	svc := NewLeaderboardService(repo, users, nil, 0, time.UTC)

	rank, err := svc.RankOf(context.Background(), ids[2], PeriodAllTime, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 3, rank)

	rank, err = svc.RankOf(context.Background(), uuid.New(), PeriodAllTime, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, rank, "unranked volunteers report zero")
}
