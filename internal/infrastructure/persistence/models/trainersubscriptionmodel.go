package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/fitmo-inc/fitmo/internal/shared/constants"
)

// TrainerSubscriptionModel represents the database persistence model for
// trainer subscriptions.
type TrainerSubscriptionModel struct {
	ID                uint   `gorm:"primarykey"`
	SID               string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	TrainerID         uint   `gorm:"uniqueIndex;not null"`
	OrganizationID    *uint  `gorm:"index:idx_sub_organization"`
	PlanID            *uint  `gorm:"index:idx_sub_plan"`
	IsTrial           bool   `gorm:"not null;default:false"`
	TrialStart        *time.Time
	TrialEnd          *time.Time
	TrialUsed         bool `gorm:"not null;default:false"`
	SubscriptionStart *time.Time
	SubscriptionEnd   *time.Time `gorm:"index:idx_sub_end"`
	IsActive          bool       `gorm:"not null;default:true;index:idx_sub_active"`
	AutoRenew         bool       `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (TrainerSubscriptionModel) TableName() string {
	return constants.TableTrainerSubscriptions
}
