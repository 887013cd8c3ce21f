package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/fitmo-inc/fitmo/internal/shared/constants"
)

// BookingModel represents the billing-relevant slice of bookings. The full
// booking lifecycle is owned elsewhere; this layer reads the price and
// writes the commission split.
type BookingModel struct {
	ID               uint      `gorm:"primarykey"`
	SID              string    `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: bk_xxx"`
	TrainerID        uint      `gorm:"not null;index:idx_booking_trainer"`
	Status           string    `gorm:"not null;size:20;index:idx_booking_status"`
	BookingDate      time.Time `gorm:"not null;index:idx_booking_date"`
	TotalPrice       int64     `gorm:"not null;comment:MAD centimes"`
	CommissionRate   int       `gorm:"not null;default:0;comment:integer percent"`
	CommissionAmount int64     `gorm:"not null;default:0;comment:MAD centimes"`
	TrainerEarnings  int64     `gorm:"not null;default:0;comment:MAD centimes"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (BookingModel) TableName() string {
	return constants.TableBookings
}
