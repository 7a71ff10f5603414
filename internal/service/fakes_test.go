package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/internal/repository"
	"github.com/Omar-0O/rtc-volunteers/pkg/apperror"
	"github.com/Omar-0O/rtc-volunteers/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the SQL semantics of the real
// implementations closely enough for service-level tests.

type fakeSubmissionRepo struct {
	submissions []model.ActivitySubmission
	createErrs  []error
}

var _ repository.SubmissionRepository = (*fakeSubmissionRepo)(nil)

func (f *fakeSubmissionRepo) Create(ctx context.Context, submission *model.ActivitySubmission) error {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}
	f.submissions = append(f.submissions, *submission)
	return nil
}

func (f *fakeSubmissionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ActivitySubmission, error) {
	for i := range f.submissions {
		if f.submissions[i].ID == id {
			s := f.submissions[i]
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubmissionRepo) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID, excludeFines bool) ([]model.ActivitySubmission, error) {
	var out []model.ActivitySubmission
	for _, s := range f.submissions {
		if s.VolunteerID != volunteerID {
			continue
		}
		if excludeFines && s.IsFine() {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSubmissionRepo) ListRecent(ctx context.Context, volunteerID uuid.UUID, limit int) ([]model.ActivitySubmission, error) {
	all, _ := f.ListByVolunteer(ctx, volunteerID, true)
	sort.Slice(all, func(i, j int) bool { return all[i].SubmittedAt.After(all[j].SubmittedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeSubmissionRepo) CountApprovedActivities(ctx context.Context, volunteerID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range f.submissions {
		if s.VolunteerID == volunteerID && s.Status == model.SubmissionApproved && !s.IsFine() {
			n++
		}
	}
	return n, nil
}

func (f *fakeSubmissionRepo) WindowStats(ctx context.Context, committeeID *uuid.UUID, start, end *time.Time) ([]repository.WindowStat, error) {
	byVolunteer := map[uuid.UUID]*repository.WindowStat{}
	var order []uuid.UUID
	for _, s := range f.submissions {
		if s.Status != model.SubmissionApproved || s.IsFine() {
			continue
		}
		if committeeID != nil && (s.CommitteeID == nil || *s.CommitteeID != *committeeID) {
			continue
		}
		if start != nil && s.SubmittedAt.Before(*start) {
			continue
		}
		if end != nil && s.SubmittedAt.After(*end) {
			continue
		}
		st, ok := byVolunteer[s.VolunteerID]
		if !ok {
			st = &repository.WindowStat{VolunteerID: s.VolunteerID}
			byVolunteer[s.VolunteerID] = st
			order = append(order, s.VolunteerID)
		}
		if s.PointsAwarded > 0 {
			st.Points += s.PointsAwarded
		}
		st.Participations++
	}

	out := make([]repository.WindowStat, 0, len(order))
	for _, id := range order {
		out = append(out, *byVolunteer[id])
	}
	return out, nil
}

func (f *fakeSubmissionRepo) CommitteeWindowTotals(ctx context.Context, committeeID uuid.UUID, start, end *time.Time) (int, int64, error) {
	stats, _ := f.WindowStats(ctx, &committeeID, start, end)
	points := 0
	var participations int64
	for _, st := range stats {
		points += st.Points
		participations += int64(st.Participations)
	}
	return points, participations, nil
}

func (f *fakeSubmissionRepo) ListVestViolations(ctx context.Context, volunteerID uuid.UUID) ([]model.ActivitySubmission, error) {
	var out []model.ActivitySubmission
	for _, s := range f.submissions {
		if s.VolunteerID != volunteerID || s.Location == nil || *s.Location != model.LocationBranch {
			continue
		}
		if s.WoreVest != nil && !*s.WoreVest {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (f *fakeSubmissionRepo) SetWoreVest(ctx context.Context, id uuid.UUID, woreVest bool) error {
	for i := range f.submissions {
		if f.submissions[i].ID == id {
			f.submissions[i].WoreVest = &woreVest
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeUserRepo struct {
	profiles map[uuid.UUID]*model.Profile
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{profiles: map[uuid.UUID]*model.Profile{}}
}

func (f *fakeUserRepo) addProfile(p model.Profile) {
	f.profiles[p.UserID] = &p
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User, profile *model.Profile) error {
	if profile != nil {
		f.profiles[user.ID] = profile
	}
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	return &model.Role{ID: 1, Name: name}, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *model.User, profile *model.Profile) error {
	if profile != nil {
		f.profiles[profile.UserID] = profile
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.profiles)), nil
}

func (f *fakeUserRepo) FindProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindProfiles(ctx context.Context, committeeID *uuid.UUID) ([]model.Profile, error) {
	var out []model.Profile
	for _, p := range f.profiles {
		if committeeID != nil && (p.CommitteeID == nil || *p.CommitteeID != *committeeID) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeUserRepo) FindProfilesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Profile, error) {
	var out []model.Profile
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateProfileTotals(ctx context.Context, userID uuid.UUID, totalPoints, activitiesCount int) error {
	if p, ok := f.profiles[userID]; ok {
		p.TotalPoints = totalPoints
		p.ActivitiesCount = activitiesCount
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) SetProfileCommittee(ctx context.Context, userID uuid.UUID, committeeID *uuid.UUID) error {
	if p, ok := f.profiles[userID]; ok {
		p.CommitteeID = committeeID
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) SetProfileLevel(ctx context.Context, userID uuid.UUID, level string) error {
	if p, ok := f.profiles[userID]; ok {
		p.Level = string(model.NormalizeLevel(level))
		return nil
	}
	return gorm.ErrRecordNotFound
}

type fakeBadgeRepo struct {
	badges    map[uuid.UUID]*model.Badge
	awards    []model.UserBadge
	awardErrs []error
}

var _ repository.BadgeRepository = (*fakeBadgeRepo)(nil)

func newFakeBadgeRepo() *fakeBadgeRepo {
	return &fakeBadgeRepo{badges: map[uuid.UUID]*model.Badge{}}
}

func (f *fakeBadgeRepo) Create(ctx context.Context, badge *model.Badge) error {
	if badge.ID == uuid.Nil {
		badge.ID = uuid.New()
	}
	f.badges[badge.ID] = badge
	return nil
}

func (f *fakeBadgeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Badge, error) {
	if b, ok := f.badges[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBadgeRepo) FindAll(ctx context.Context) ([]model.Badge, error) {
	var out []model.Badge
	for _, b := range f.badges {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBadgeRepo) Update(ctx context.Context, badge *model.Badge) error {
	f.badges[badge.ID] = badge
	return nil
}

func (f *fakeBadgeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.badges, id)
	return nil
}

func (f *fakeBadgeRepo) Award(ctx context.Context, userID, badgeID uuid.UUID) (*model.UserBadge, error) {
	if len(f.awardErrs) > 0 {
		err := f.awardErrs[0]
		f.awardErrs = f.awardErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	for _, a := range f.awards {
		if a.UserID == userID && a.BadgeID == badgeID {
			return nil, fmt.Errorf("%w", apperror.ErrDuplicateAward)
		}
	}
	award := model.UserBadge{ID: uuid.New(), UserID: userID, BadgeID: badgeID, EarnedAt: time.Now()}
	f.awards = append(f.awards, award)
	return &award, nil
}

func (f *fakeBadgeRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.UserBadge, error) {
	var out []model.UserBadge
	for _, a := range f.awards {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeBadgeRepo) ListHolders(ctx context.Context, badgeID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, a := range f.awards {
		if a.BadgeID == badgeID {
			out = append(out, a.UserID)
		}
	}
	return out, nil
}

type fakeFineRepo struct {
	fineTypes    map[uuid.UUID]*model.FineType
	fines        map[uuid.UUID]*model.Fine
	participants map[uuid.UUID]*model.CaravanParticipant
}

var _ repository.FineRepository = (*fakeFineRepo)(nil)

func newFakeFineRepo() *fakeFineRepo {
	return &fakeFineRepo{
		fineTypes:    map[uuid.UUID]*model.FineType{},
		fines:        map[uuid.UUID]*model.Fine{},
		participants: map[uuid.UUID]*model.CaravanParticipant{},
	}
}

func (f *fakeFineRepo) CreateFineType(ctx context.Context, fineType *model.FineType) error {
	if fineType.ID == uuid.Nil {
		fineType.ID = uuid.New()
	}
	f.fineTypes[fineType.ID] = fineType
	return nil
}

func (f *fakeFineRepo) FindFineType(ctx context.Context, id uuid.UUID) (*model.FineType, error) {
	if ft, ok := f.fineTypes[id]; ok {
		return ft, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFineRepo) FindAllFineTypes(ctx context.Context) ([]model.FineType, error) {
	var out []model.FineType
	for _, ft := range f.fineTypes {
		out = append(out, *ft)
	}
	return out, nil
}

func (f *fakeFineRepo) UpdateFineType(ctx context.Context, fineType *model.FineType) error {
	f.fineTypes[fineType.ID] = fineType
	return nil
}

func (f *fakeFineRepo) DeleteFineType(ctx context.Context, id uuid.UUID) error {
	delete(f.fineTypes, id)
	return nil
}

func (f *fakeFineRepo) CreateFine(ctx context.Context, fine *model.Fine) error {
	if fine.ID == uuid.Nil {
		fine.ID = uuid.New()
	}
	if fine.CreatedAt.IsZero() {
		fine.CreatedAt = time.Now()
	}
	cp := *fine
	f.fines[fine.ID] = &cp
	return nil
}

func (f *fakeFineRepo) FindFine(ctx context.Context, id uuid.UUID) (*model.Fine, error) {
	if fine, ok := f.fines[id]; ok {
		cp := *fine
		if ft, ok := f.fineTypes[fine.FineTypeID]; ok {
			cp.FineType = ft
		}
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFineRepo) ListFines(ctx context.Context, volunteerID uuid.UUID) ([]model.Fine, error) {
	var out []model.Fine
	for _, fine := range f.fines {
		if fine.VolunteerID != volunteerID {
			continue
		}
		cp := *fine
		if ft, ok := f.fineTypes[fine.FineTypeID]; ok {
			cp.FineType = ft
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeFineRepo) DeleteFine(ctx context.Context, id uuid.UUID) error {
	delete(f.fines, id)
	return nil
}

func (f *fakeFineRepo) SetFinePaid(ctx context.Context, id uuid.UUID, isPaid bool) error {
	if fine, ok := f.fines[id]; ok {
		fine.IsPaid = isPaid
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeFineRepo) ListCaravanVestViolations(ctx context.Context, volunteerID uuid.UUID) ([]model.CaravanParticipant, error) {
	var out []model.CaravanParticipant
	for _, p := range f.participants {
		if p.VolunteerID == volunteerID && !p.WoreVest {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeFineRepo) FindCaravanParticipant(ctx context.Context, id uuid.UUID) (*model.CaravanParticipant, error) {
	if p, ok := f.participants[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFineRepo) SetCaravanWoreVest(ctx context.Context, id uuid.UUID, woreVest bool) error {
	if p, ok := f.participants[id]; ok {
		p.WoreVest = woreVest
		return nil
	}
	return gorm.ErrRecordNotFound
}

type fakeActivityTypeRepo struct {
	types map[uuid.UUID]*model.ActivityType
}

var _ repository.ActivityTypeRepository = (*fakeActivityTypeRepo)(nil)

func newFakeActivityTypeRepo() *fakeActivityTypeRepo {
	return &fakeActivityTypeRepo{types: map[uuid.UUID]*model.ActivityType{}}
}

func (f *fakeActivityTypeRepo) addType(at model.ActivityType) {
	f.types[at.ID] = &at
}

func (f *fakeActivityTypeRepo) Create(ctx context.Context, activityType *model.ActivityType) error {
	if activityType.ID == uuid.Nil {
		activityType.ID = uuid.New()
	}
	f.types[activityType.ID] = activityType
	return nil
}

func (f *fakeActivityTypeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ActivityType, error) {
	if at, ok := f.types[id]; ok {
		cp := *at
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeActivityTypeRepo) FindAll(ctx context.Context, committeeID *uuid.UUID) ([]model.ActivityType, error) {
	var out []model.ActivityType
	for _, at := range f.types {
		if committeeID != nil && (at.CommitteeID == nil || *at.CommitteeID != *committeeID) {
			continue
		}
		out = append(out, *at)
	}
	return out, nil
}

func (f *fakeActivityTypeRepo) Update(ctx context.Context, activityType *model.ActivityType) error {
	f.types[activityType.ID] = activityType
	return nil
}

func (f *fakeActivityTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.types, id)
	return nil
}

type fakeImageStorage struct {
	uploads   []string
	deleted   []string
	uploadErr error
}

var _ storage.ImageStorage = (*fakeImageStorage)(nil)

func (f *fakeImageStorage) Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	url := "https://images.test/" + folder + "/" + fileName
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeImageStorage) Delete(ctx context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}
