package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommitteeType string

const (
	CommitteeTypeProduction CommitteeType = "production"
	CommitteeTypeFourthYear CommitteeType = "fourth_year"
)

type Committee struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string        `gorm:"size:100;uniqueIndex;not null" json:"name"`
	NameAr        *string       `gorm:"size:100" json:"name_ar,omitempty"`
	DescriptionAr *string       `gorm:"type:text" json:"description_ar,omitempty"`
	Color         *string       `gorm:"size:20" json:"color,omitempty"`
	CommitteeType CommitteeType `gorm:"size:20;default:production" json:"committee_type"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Committee) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Committee) DisplayName() LocalizedText {
	name := LocalizedText{EN: c.Name}
	if c.NameAr != nil {
		name.AR = *c.NameAr
	}
	return name
}
