package models

import (
	"time"

	"github.com/fitmo-inc/fitmo/internal/shared/constants"
)

// SeatOverageModel represents the database persistence model for purchased
// seat blocks. Rows are immutable purchase records.
type SeatOverageModel struct {
	ID             uint      `gorm:"primarykey"`
	SID            string    `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: seat_xxx"`
	OrganizationID uint      `gorm:"not null;index:idx_overage_org"`
	SeatsPurchased int       `gorm:"not null"`
	PricePerSeat   int64     `gorm:"not null;comment:MAD centimes"`
	TotalPrice     int64     `gorm:"not null;comment:MAD centimes"`
	StartDate      time.Time `gorm:"not null"`
	EndDate        time.Time `gorm:"not null;index:idx_overage_end"`
	IsActive       bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time
}

// TableName specifies the table name for GORM
func (SeatOverageModel) TableName() string {
	return constants.TableSeatOverages
}
