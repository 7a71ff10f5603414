package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/internal/repository"
	"github.com/Omar-0O/rtc-volunteers/pkg/apperror"
	"github.com/google/uuid"
)

var vestViolationLabel = model.LocalizedText{
	EN: "Safety vest violation",
	AR: "مخالفة عدم ارتداء السترة",
}

// FineService unifies manual fines with the implicit fines derived from
// vest violations, and routes waive requests back to the right origin
// record.
type FineService interface {
	FinesFor(ctx context.Context, volunteerID uuid.UUID) ([]model.FineRecord, error)
	CreateFine(ctx context.Context, rc model.RequestContext, volunteerID, fineTypeID uuid.UUID) (*model.Fine, error)
	Waive(ctx context.Context, rc model.RequestContext, sourceType model.FineSourceType, sourceID uuid.UUID) error
	MarkPaid(ctx context.Context, rc model.RequestContext, fineID uuid.UUID) error

	ListFineTypes(ctx context.Context) ([]model.FineType, error)
	CreateFineType(ctx context.Context, fineType *model.FineType) error
	UpdateFineType(ctx context.Context, fineType *model.FineType) error
	DeleteFineType(ctx context.Context, id uuid.UUID) error
}

type fineService struct {
	fineRepo       repository.FineRepository
	submissionRepo repository.SubmissionRepository

	// waiveHandlers routes a waive request by the record's source. Manual
	// fines are deleted; implicit vest fines are cleared by flipping the
	// vest flag on the origin row.
	waiveHandlers map[model.FineSourceType]func(ctx context.Context, rc model.RequestContext, sourceID uuid.UUID) error
}

func NewFineService(fineRepo repository.FineRepository, submissionRepo repository.SubmissionRepository) FineService {
	s := &fineService{
		fineRepo:       fineRepo,
		submissionRepo: submissionRepo,
	}
	s.waiveHandlers = map[model.FineSourceType]func(ctx context.Context, rc model.RequestContext, sourceID uuid.UUID) error{
		model.FineSourceManual:       s.waiveManual,
		model.FineSourceCaravanVest:  s.waiveCaravanVest,
		model.FineSourceActivityVest: s.waiveActivityVest,
	}
	return s
}

// FinesFor returns every outstanding and paid fine for a volunteer,
// newest first: manual fines plus vest violations from branch activities
// and caravan participations. Implicit fines are always unpaid; settling
// one means waiving it.
func (s *fineService) FinesFor(ctx context.Context, volunteerID uuid.UUID) ([]model.FineRecord, error) {
	records := make([]model.FineRecord, 0)

	manual, err := s.fineRepo.ListFines(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	for _, f := range manual {
		label := model.LocalizedText{EN: "Fine"}
		if f.FineType != nil {
			label = f.FineType.DisplayName()
		}
		records = append(records, model.FineRecord{
			SourceType:  model.FineSourceManual,
			SourceID:    f.ID,
			VolunteerID: f.VolunteerID,
			Label:       label,
			Amount:      f.Amount,
			IsPaid:      f.IsPaid,
			RecordedBy:  f.CreatedBy,
			CreatedAt:   f.CreatedAt,
		})
	}

	caravans, err := s.fineRepo.ListCaravanVestViolations(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	for _, p := range caravans {
		label := vestViolationLabel
		if p.Caravan != nil {
			label = model.LocalizedText{
				EN: fmt.Sprintf("%s (%s)", vestViolationLabel.EN, p.Caravan.DisplayName().EN),
				AR: vestViolationLabel.AR,
			}
		}
		records = append(records, model.FineRecord{
			SourceType:  model.FineSourceCaravanVest,
			SourceID:    p.ID,
			VolunteerID: p.VolunteerID,
			Label:       label,
			Amount:      model.VestViolationAmount,
			RecordedBy:  p.RecordedBy,
			CreatedAt:   p.CreatedAt,
		})
	}

	submissions, err := s.submissionRepo.ListVestViolations(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	for _, sub := range submissions {
		recordedBy := uuid.Nil
		if sub.RecordedBy != nil {
			recordedBy = *sub.RecordedBy
		}
		records = append(records, model.FineRecord{
			SourceType:  model.FineSourceActivityVest,
			SourceID:    sub.ID,
			VolunteerID: sub.VolunteerID,
			Label:       vestViolationLabel,
			Amount:      model.VestViolationAmount,
			RecordedBy:  recordedBy,
			CreatedAt:   sub.SubmittedAt,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

// CreateFine records a manual fine. The amount is snapshotted from the
// fine type so later price changes never touch existing fines.
func (s *fineService) CreateFine(ctx context.Context, rc model.RequestContext, volunteerID, fineTypeID uuid.UUID) (*model.Fine, error) {
	fineType, err := s.fineRepo.FindFineType(ctx, fineTypeID)
	if err != nil {
		return nil, err
	}

	fine := &model.Fine{
		VolunteerID: volunteerID,
		FineTypeID:  fineType.ID,
		Amount:      fineType.Amount,
		CreatedBy:   rc.UserID,
	}
	if err := withRetry(ctx, func() error {
		return s.fineRepo.CreateFine(ctx, fine)
	}); err != nil {
		return nil, err
	}

	fine.FineType = fineType
	return fine, nil
}

// Waive removes a fine. Callers may waive fines they recorded themselves;
// elevated roles may waive anything. Unknown source types are rejected up
// front instead of falling through to a nil handler.
func (s *fineService) Waive(ctx context.Context, rc model.RequestContext, sourceType model.FineSourceType, sourceID uuid.UUID) error {
	handler, ok := s.waiveHandlers[sourceType]
	if !ok {
		return fmt.Errorf("%w: unknown fine source %q", apperror.ErrInvalidInput, sourceType)
	}
	return handler(ctx, rc, sourceID)
}

func (s *fineService) authorizeWaive(rc model.RequestContext, recordedBy uuid.UUID) error {
	if model.ElevatedRoles[rc.Role] {
		return nil
	}
	if rc.UserID != uuid.Nil && rc.UserID == recordedBy {
		return nil
	}
	return fmt.Errorf("%w: only the recorder or an elevated role may waive a fine", apperror.ErrForbidden)
}

func (s *fineService) waiveManual(ctx context.Context, rc model.RequestContext, sourceID uuid.UUID) error {
	fine, err := s.fineRepo.FindFine(ctx, sourceID)
	if err != nil {
		return err
	}
	if err := s.authorizeWaive(rc, fine.CreatedBy); err != nil {
		return err
	}
	return s.fineRepo.DeleteFine(ctx, fine.ID)
}

func (s *fineService) waiveCaravanVest(ctx context.Context, rc model.RequestContext, sourceID uuid.UUID) error {
	participant, err := s.fineRepo.FindCaravanParticipant(ctx, sourceID)
	if err != nil {
		return err
	}
	if err := s.authorizeWaive(rc, participant.RecordedBy); err != nil {
		return err
	}
	return s.fineRepo.SetCaravanWoreVest(ctx, participant.ID, true)
}

func (s *fineService) waiveActivityVest(ctx context.Context, rc model.RequestContext, sourceID uuid.UUID) error {
	submission, err := s.submissionRepo.FindByID(ctx, sourceID)
	if err != nil {
		return err
	}
	recordedBy := uuid.Nil
	if submission.RecordedBy != nil {
		recordedBy = *submission.RecordedBy
	}
	if err := s.authorizeWaive(rc, recordedBy); err != nil {
		return err
	}
	return s.submissionRepo.SetWoreVest(ctx, submission.ID, true)
}

// MarkPaid settles a manual fine without deleting it, keeping the payment
// in the history.
func (s *fineService) MarkPaid(ctx context.Context, rc model.RequestContext, fineID uuid.UUID) error {
	fine, err := s.fineRepo.FindFine(ctx, fineID)
	if err != nil {
		return err
	}
	if err := s.authorizeWaive(rc, fine.CreatedBy); err != nil {
		return err
	}
	return s.fineRepo.SetFinePaid(ctx, fine.ID, true)
}

func (s *fineService) ListFineTypes(ctx context.Context) ([]model.FineType, error) {
	return s.fineRepo.FindAllFineTypes(ctx)
}

func (s *fineService) CreateFineType(ctx context.Context, fineType *model.FineType) error {
	return s.fineRepo.CreateFineType(ctx, fineType)
}

func (s *fineService) UpdateFineType(ctx context.Context, fineType *model.FineType) error {
	return s.fineRepo.UpdateFineType(ctx, fineType)
}

func (s *fineService) DeleteFineType(ctx context.Context, id uuid.UUID) error {
	return s.fineRepo.DeleteFineType(ctx, id)
}
