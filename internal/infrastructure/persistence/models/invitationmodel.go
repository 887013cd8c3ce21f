package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/fitmo-inc/fitmo/internal/shared/constants"
)

// InvitationModel represents the database persistence model for organization
// invitations. One row per (organization, email); re-invites rotate in place.
type InvitationModel struct {
	ID             uint      `gorm:"primarykey"`
	SID            string    `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: in_xxx"`
	OrganizationID uint      `gorm:"not null;uniqueIndex:idx_org_email,priority:1"`
	Email          string    `gorm:"not null;size:254;uniqueIndex:idx_org_email,priority:2"`
	Token          string    `gorm:"uniqueIndex;not null;size:64"`
	InvitedByID    uint      `gorm:"not null"`
	Accepted       bool      `gorm:"not null;default:false"`
	AcceptedByID   *uint
	AcceptedAt     *time.Time
	ExpiresAt      time.Time `gorm:"not null;index:idx_invite_expiry"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (InvitationModel) TableName() string {
	return constants.TableOrganizationInvites
}
