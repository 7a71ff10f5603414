package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FineType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	NameAr    *string   `gorm:"size:100" json:"name_ar,omitempty"`
	Amount    int       `gorm:"not null" json:"amount"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (f *FineType) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (f *FineType) DisplayName() LocalizedText {
	name := LocalizedText{EN: f.Name}
	if f.NameAr != nil {
		name.AR = *f.NameAr
	}
	return name
}

// Fine is a manual fine recorded by a staff member against a volunteer.
type Fine struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VolunteerID uuid.UUID `gorm:"type:uuid;index;not null" json:"volunteer_id"`
	FineTypeID  uuid.UUID `gorm:"type:uuid;not null" json:"fine_type_id"`
	FineType    *FineType `gorm:"foreignKey:FineTypeID" json:"fine_type,omitempty"`
	Amount      int       `gorm:"not null" json:"amount"`
	IsPaid      bool      `gorm:"default:false" json:"is_paid"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (f *Fine) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Caravan is a field trip event. Participation rows carry the vest flag that
// feeds the implicit-fine view.
type Caravan struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	NameAr    *string   `gorm:"size:100" json:"name_ar,omitempty"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Caravan) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Caravan) DisplayName() LocalizedText {
	name := LocalizedText{EN: c.Name}
	if c.NameAr != nil {
		name.AR = *c.NameAr
	}
	return name
}

type CaravanParticipant struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CaravanID   uuid.UUID `gorm:"type:uuid;index;not null" json:"caravan_id"`
	Caravan     *Caravan  `gorm:"foreignKey:CaravanID" json:"caravan,omitempty"`
	VolunteerID uuid.UUID `gorm:"type:uuid;index;not null" json:"volunteer_id"`
	WoreVest    bool      `gorm:"default:true" json:"wore_vest"`
	RecordedBy  uuid.UUID `gorm:"type:uuid;not null" json:"recorded_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *CaravanParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// FineSourceType tags where a unified fine record came from, so waive
// operations can route back to the correct origin table.
type FineSourceType string

const (
	FineSourceManual       FineSourceType = "manual"
	FineSourceCaravanVest  FineSourceType = "caravan_vest"
	FineSourceActivityVest FineSourceType = "activity_vest"
)

// VestViolationAmount is the fixed policy fine for not wearing the safety
// vest at a branch or caravan activity.
const VestViolationAmount = 50

// FineRecord is the unified read model over manual fines and implicit vest
// violations. It is computed, never persisted.
type FineRecord struct {
	SourceType  FineSourceType `json:"source_type"`
	SourceID    uuid.UUID      `json:"source_id"`
	VolunteerID uuid.UUID      `json:"volunteer_id"`
	Label       LocalizedText  `json:"label"`
	Amount      int            `json:"amount"`
	IsPaid      bool           `json:"is_paid"`
	RecordedBy  uuid.UUID      `json:"recorded_by"`
	CreatedAt   time.Time      `json:"created_at"`
}
