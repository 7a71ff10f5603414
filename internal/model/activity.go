package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityMode string

const (
	ActivityModeIndividual ActivityMode = "individual"
	ActivityModeGroup      ActivityMode = "group"
)

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Submission locations. Branch activities are subject to the safety-vest
// policy; a branch submission with WoreVest=false surfaces as an implicit
// fine.
const (
	LocationBranch = "branch"
	LocationOnline = "online"
	LocationField  = "field"
)

// ActivityType defines the reward for one kind of activity. Its point value
// is copied into each submission at creation and never recomputed, so later
// edits only affect new submissions.
type ActivityType struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string       `gorm:"size:100;not null" json:"name"`
	NameAr      *string      `gorm:"size:100" json:"name_ar,omitempty"`
	CommitteeID *uuid.UUID   `gorm:"type:uuid;index" json:"committee_id,omitempty"`
	Points      int          `gorm:"not null" json:"points"`
	Mode        ActivityMode `gorm:"size:20;default:individual" json:"mode"`
	Description *string      `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (a *ActivityType) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *ActivityType) DisplayName() LocalizedText {
	name := LocalizedText{EN: a.Name}
	if a.NameAr != nil {
		name.AR = *a.NameAr
	}
	return name
}

// ActivitySubmission is one logged activity. PointsAwarded is a snapshot of
// the activity type's value at submission time. A non-nil FineTypeID marks
// the row as a fine entry: fines never count toward impact totals,
// leaderboards or badge checks.
type ActivitySubmission struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	VolunteerID    uuid.UUID        `gorm:"type:uuid;index:idx_volunteer_date,priority:1;not null" json:"volunteer_id"`
	Volunteer      *Profile         `gorm:"foreignKey:VolunteerID" json:"-"`
	ActivityTypeID uuid.UUID        `gorm:"type:uuid;index;not null" json:"activity_type_id"`
	ActivityType   *ActivityType    `gorm:"foreignKey:ActivityTypeID" json:"activity_type,omitempty"`
	CommitteeID    *uuid.UUID       `gorm:"type:uuid;index" json:"committee_id,omitempty"`
	PointsAwarded  int              `gorm:"not null" json:"points_awarded"`
	Status         SubmissionStatus `gorm:"size:20;default:approved;index" json:"status"`
	Description    *string          `gorm:"type:text" json:"description,omitempty"`
	ProofURL       *string          `gorm:"type:text" json:"proof_url,omitempty"`
	Location       *string          `gorm:"size:20" json:"location,omitempty"`
	WoreVest       *bool            `json:"wore_vest,omitempty"`
	FineTypeID     *uuid.UUID       `gorm:"type:uuid;index" json:"fine_type_id,omitempty"`
	RecordedBy     *uuid.UUID       `gorm:"type:uuid" json:"recorded_by,omitempty"`
	SubmittedAt    time.Time        `gorm:"index:idx_volunteer_date,priority:2;index" json:"submitted_at"`
}

func (s *ActivitySubmission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now()
	}
	return nil
}

// IsFine reports whether the submission is a fine entry rather than a
// genuine activity.
func (s *ActivitySubmission) IsFine() bool {
	return s.FineTypeID != nil
}
