package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/fitmo-inc/fitmo/internal/shared/constants"
)

// OrganizationModel represents the database persistence model for
// organizations.
type OrganizationModel struct {
	ID                  uint   `gorm:"primarykey"`
	SID                 string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: org_xxx"`
	Name                string `gorm:"not null;size:200"`
	Email               string `gorm:"not null;size:254"`
	OwnerID             uint   `gorm:"uniqueIndex;not null;comment:one organization per owner"`
	PlanID              *uint  `gorm:"index:idx_org_plan_ref"`
	SeatsUsed           int    `gorm:"not null;default:0"`
	ExtraSeatsPurchased int    `gorm:"not null;default:0"`
	IsTrial             bool   `gorm:"not null;default:false"`
	TrialStart          *time.Time
	TrialEnd            *time.Time
	SubscriptionStart   *time.Time
	SubscriptionEnd     *time.Time
	IsActive            bool `gorm:"not null;default:true;index:idx_org_active"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (OrganizationModel) TableName() string {
	return constants.TableOrganizations
}
