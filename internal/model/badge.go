package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Badge defines optional award thresholds. A nil threshold is not a
// requirement. MonthsRequired and CaravansRequired are stored but not
// evaluated against live history yet; eligibility checks report them as
// unenforced instead of guessing a data source.
type Badge struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string    `gorm:"size:100;not null" json:"name"`
	NameAr             *string   `gorm:"size:100" json:"name_ar,omitempty"`
	Description        *string   `gorm:"type:text" json:"description,omitempty"`
	Icon               string    `gorm:"size:50;default:award" json:"icon"`
	PointsRequired     *int      `json:"points_required,omitempty"`
	ActivitiesRequired *int      `json:"activities_required,omitempty"`
	MonthsRequired     *int      `json:"months_required,omitempty"`
	CaravansRequired   *int      `json:"caravans_required,omitempty"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (b *Badge) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *Badge) DisplayName() LocalizedText {
	name := LocalizedText{EN: b.Name}
	if b.NameAr != nil {
		name.AR = *b.NameAr
	}
	return name
}

// UserBadge is a badge award. The composite unique index is the invariant:
// a volunteer holds a given badge at most once.
type UserBadge struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_badge;not null" json:"user_id"`
	BadgeID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_badge;not null" json:"badge_id"`
	Badge    *Badge    `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
	EarnedAt time.Time `gorm:"autoCreateTime" json:"earned_at"`
}

func (ub *UserBadge) BeforeCreate(tx *gorm.DB) error {
	if ub.ID == uuid.Nil {
		ub.ID = uuid.New()
	}
	return nil
}
