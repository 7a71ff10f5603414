package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Role names. Supervisors, HR and admins are the elevated staff roles for
// fine waiving and member management.
const (
	RoleAdmin           = "admin"
	RoleSupervisor      = "supervisor"
	RoleHR              = "hr"
	RoleCommitteeLeader = "committee_leader"
	RoleVolunteer       = "volunteer"
)

// ElevatedRoles may waive fines regardless of who recorded them.
var ElevatedRoles = map[string]bool{
	RoleAdmin:      true,
	RoleSupervisor: true,
	RoleHR:         true,
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	RoleID       *uint     `json:"role_id"`
	Role         Role      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Profile      *Profile  `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Profile is the volunteer-facing record. TotalPoints and ActivitiesCount
// are caches over the submissions ledger; the ledger is the source of truth
// and both fields are refreshed after writes and by the reconcile job.
type Profile struct {
	UserID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	User            *User      `gorm:"foreignKey:UserID" json:"-"`
	FullName        string     `gorm:"size:100;not null" json:"full_name"`
	FullNameAr      *string    `gorm:"size:100" json:"full_name_ar,omitempty"`
	Phone           *string    `gorm:"size:30" json:"phone,omitempty"`
	AvatarURL       *string    `gorm:"type:text" json:"avatar_url,omitempty"`
	CommitteeID     *uuid.UUID `gorm:"type:uuid;index" json:"committee_id,omitempty"`
	Committee       *Committee `gorm:"foreignKey:CommitteeID" json:"committee,omitempty"`
	Level           string     `gorm:"size:30;default:under_follow_up" json:"level"`
	TotalPoints     int        `gorm:"default:0" json:"total_points"`
	ActivitiesCount int        `gorm:"default:0" json:"activities_count"`
	JoinedAt        time.Time  `gorm:"autoCreateTime" json:"joined_at"`
}

// DisplayName returns the bilingual name pair for the profile.
func (p *Profile) DisplayName() LocalizedText {
	name := LocalizedText{EN: p.FullName}
	if p.FullNameAr != nil {
		name.AR = *p.FullNameAr
	}
	return name
}
