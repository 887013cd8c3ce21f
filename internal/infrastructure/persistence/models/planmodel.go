package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fitmo-inc/fitmo/internal/shared/constants"
)

// PlanModel represents the database persistence model for subscription plans.
// This is the anti-corruption layer between domain and database.
type PlanModel struct {
	ID                  uint   `gorm:"primarykey"`
	SID                 string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: plan_xxx"`
	Key                 string `gorm:"uniqueIndex;not null;size:30"`
	Name                string `gorm:"not null;size:100"`
	Description         string `gorm:"size:500"`
	PriceMonthly        int64  `gorm:"not null;default:0;comment:MAD centimes"`
	PriceAnnual         int64  `gorm:"not null;default:0;comment:MAD centimes"`
	IsOrgPlan           bool   `gorm:"not null;default:false;index:idx_org_plan"`
	IncludedSeats       int    `gorm:"not null;default:0"`
	OveragePricePerSeat int64  `gorm:"not null;default:0;comment:MAD centimes"`
	CommissionRate      int    `gorm:"not null;comment:integer percent"`
	TrialDays           int    `gorm:"not null;default:0"`
	IsTrialAvailable    bool   `gorm:"not null;default:false"`
	IsActive            bool   `gorm:"not null;default:true;index:idx_plan_active"`
	Features            datatypes.JSON
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (PlanModel) TableName() string {
	return constants.TableSubscriptionPlans
}
