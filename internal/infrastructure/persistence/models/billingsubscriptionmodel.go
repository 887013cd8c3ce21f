package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/fitmo-inc/fitmo/internal/shared/constants"
)

// BillingSubscriptionModel represents the database persistence model linking
// internal billing subjects to the payment provider.
type BillingSubscriptionModel struct {
	ID                     uint   `gorm:"primarykey"`
	SID                    string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: bsub_xxx"`
	TrainerSubscriptionID  *uint  `gorm:"index:idx_bsub_trainer_sub"`
	OrganizationID         *uint  `gorm:"index:idx_bsub_org"`
	PlanID                 uint   `gorm:"not null"`
	ProviderCustomerID     string `gorm:"size:100;index:idx_bsub_customer"`
	ProviderSubscriptionID string `gorm:"uniqueIndex;not null;size:100"`
	Cycle                  string `gorm:"not null;size:10"`
	Status                 string `gorm:"not null;size:20;index:idx_bsub_status"`
	CurrentPeriodStart     time.Time
	CurrentPeriodEnd       time.Time `gorm:"index:idx_bsub_period_end"`
	FailedPaymentCount     int       `gorm:"not null;default:0"`
	CancelledAt            *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DeletedAt              gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (BillingSubscriptionModel) TableName() string {
	return constants.TableBillingSubscriptions
}
