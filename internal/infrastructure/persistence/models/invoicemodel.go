package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/fitmo-inc/fitmo/internal/shared/constants"
)

// InvoiceModel represents the database persistence model for ledger
// invoices. The provider invoice id carries a unique index so webhook
// replays cannot create duplicate rows.
type InvoiceModel struct {
	ID                    uint    `gorm:"primarykey"`
	SID                   string  `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: iv_xxx"`
	BillingSubscriptionID uint    `gorm:"not null;index:idx_invoice_bsub"`
	TrainerSubscriptionID *uint   `gorm:"index:idx_invoice_trainer_sub"`
	OrganizationID        *uint   `gorm:"index:idx_invoice_org"`
	InvoiceNumber         string  `gorm:"uniqueIndex;not null;size:40"`
	ProviderInvoiceID     *string `gorm:"uniqueIndex;size:100"`
	Subtotal              int64   `gorm:"not null;comment:MAD centimes"`
	TaxAmount             int64   `gorm:"not null;default:0;comment:MAD centimes"`
	TotalAmount           int64   `gorm:"not null;comment:MAD centimes"`
	Status                string  `gorm:"not null;size:20;index:idx_invoice_status"`
	IssueDate             time.Time `gorm:"not null"`
	DueDate               time.Time `gorm:"not null"`
	PaidDate              *time.Time
	PeriodStart           time.Time
	PeriodEnd             time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (InvoiceModel) TableName() string {
	return constants.TableInvoices
}
