package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LeaderboardEntry is one ranked row. Rank is positional: the volunteer
// with the highest points is rank 1, the next rank 2, regardless of ties.
type LeaderboardEntry struct {
	Rank           int                 `json:"rank"`
	VolunteerID    uuid.UUID           `json:"volunteer_id"`
	Name           model.LocalizedText `json:"name"`
	CommitteeID    *uuid.UUID          `json:"committee_id,omitempty"`
	Level          model.LevelMeta     `json:"level"`
	Points         int                 `json:"points"`
	Participations int                 `json:"participations"`
}

// LeaderboardService ranks volunteers by windowed point totals computed
// from the ledger.
type LeaderboardService interface {
	Rank(ctx context.Context, period Period, committeeID *uuid.UUID, now time.Time) ([]LeaderboardEntry, error)
	Podium(ctx context.Context, period Period, committeeID *uuid.UUID, now time.Time) ([]LeaderboardEntry, error)
	FilterByLevel(entries []LeaderboardEntry, level string) []LeaderboardEntry
	RankOf(ctx context.Context, volunteerID uuid.UUID, period Period, now time.Time) (int, error)
}

type leaderboardService struct {
	submissionRepo repository.SubmissionRepository
	userRepo       repository.UserRepository
	redisClient    *redis.Client
	cacheTTL       time.Duration
	loc            *time.Location
}

func NewLeaderboardService(submissionRepo repository.SubmissionRepository, userRepo repository.UserRepository, redisClient *redis.Client, cacheTTL time.Duration, loc *time.Location) LeaderboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &leaderboardService{
		submissionRepo: submissionRepo,
		userRepo:       userRepo,
		redisClient:    redisClient,
		cacheTTL:       cacheTTL,
		loc:            loc,
	}
}

func leaderboardCacheKey(period Period, committeeID *uuid.UUID) string {
	committee := "all"
	if committeeID != nil {
		committee = committeeID.String()
	}
	return fmt.Sprintf("leaderboard:%s:%s", period, committee)
}

func (s *leaderboardService) Rank(ctx context.Context, period Period, committeeID *uuid.UUID, now time.Time) ([]LeaderboardEntry, error) {
	cacheKey := leaderboardCacheKey(period, committeeID)
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	window := ResolveWindow(period, now, s.loc)
	stats, err := s.submissionRepo.WindowStats(ctx, committeeID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(stats))
	for _, st := range stats {
		ids = append(ids, st.VolunteerID)
	}
	profiles, err := s.userRepo.FindProfilesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	profileByID := make(map[uuid.UUID]model.Profile, len(profiles))
	for _, p := range profiles {
		profileByID[p.UserID] = p
	}

	entries := make([]LeaderboardEntry, 0, len(stats))
	for _, st := range stats {
		profile, ok := profileByID[st.VolunteerID]
		if !ok {
			// Ledger rows whose profile was deleted are skipped.
			continue
		}
		entries = append(entries, LeaderboardEntry{
			VolunteerID:    st.VolunteerID,
			Name:           profile.DisplayName(),
			CommitteeID:    profile.CommitteeID,
			Level:          model.MetaForLevel(profile.Level),
			Points:         st.Points,
			Participations: st.Participations,
		})
	}

	// Ties break on participations, then on name, so the ordering is
	// stable across requests.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		if entries[i].Participations != entries[j].Participations {
			return entries[i].Participations > entries[j].Participations
		}
		return strings.ToLower(entries[i].Name.EN) < strings.ToLower(entries[j].Name.EN)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.redisClient.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				log.Printf("failed to cache leaderboard %s: %v", cacheKey, err)
			}
		}
	}

	return entries, nil
}

// Podium returns the top three in display order: second place, first
// place, third place. Fewer than three ranked volunteers yields a shorter
// slice, still centered on first place.
func (s *leaderboardService) Podium(ctx context.Context, period Period, committeeID *uuid.UUID, now time.Time) ([]LeaderboardEntry, error) {
	entries, err := s.Rank(ctx, period, committeeID, now)
	if err != nil {
		return nil, err
	}

	switch {
	case len(entries) == 0:
		return []LeaderboardEntry{}, nil
	case len(entries) == 1:
		return []LeaderboardEntry{entries[0]}, nil
	case len(entries) == 2:
		return []LeaderboardEntry{entries[1], entries[0]}, nil
	}
	return []LeaderboardEntry{entries[1], entries[0], entries[2]}, nil
}

// FilterByLevel narrows an already-ranked list to one level. Ranks keep
// their pre-filter values, so gaps in the sequence are expected.
func (s *leaderboardService) FilterByLevel(entries []LeaderboardEntry, level string) []LeaderboardEntry {
	if level == "" {
		return entries
	}
	want := model.NormalizeLevel(level)
	filtered := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if e.Level.Code == want {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// RankOf reports a single volunteer's position, or 0 when they have no
// ranked entry in the window.
func (s *leaderboardService) RankOf(ctx context.Context, volunteerID uuid.UUID, period Period, now time.Time) (int, error) {
	entries, err := s.Rank(ctx, period, nil, now)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		if e.VolunteerID == volunteerID {
			return e.Rank, nil
		}
	}
	return 0, nil
}
