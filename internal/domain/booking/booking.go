// Package booking holds the slice of the booking collaborator the billing
// core reads and writes: the total price and the commission fields populated
// when a booking completes. The full booking lifecycle is owned by the
// booking subsystem.
package booking

import (
	"fmt"
	"time"
)

// Status values the billing core cares about.
const (
	StatusCompleted = "completed"
)

// Booking carries the money fields the commission calculator populates.
// Amounts are in minor currency units; commissionRate is an integer percent.
// After ApplyCommission, commissionAmount + trainerEarnings == totalPrice
// exactly.
type Booking struct {
	id               uint
	sid              string
	trainerID        uint
	status           string
	bookingDate      time.Time
	totalPrice       int64
	commissionRate   int
	commissionAmount int64
	trainerEarnings  int64
	createdAt        time.Time
	updatedAt        time.Time
}

// ReconstructBooking reconstructs a booking from persistence.
func ReconstructBooking(
	id uint,
	sid string,
	trainerID uint,
	status string,
	bookingDate time.Time,
	totalPrice int64,
	commissionRate int,
	commissionAmount, trainerEarnings int64,
	createdAt, updatedAt time.Time,
) (*Booking, error) {
	if id == 0 {
		return nil, fmt.Errorf("booking ID cannot be zero")
	}
	if trainerID == 0 {
		return nil, fmt.Errorf("trainer ID is required")
	}
	if totalPrice < 0 {
		return nil, fmt.Errorf("total price cannot be negative")
	}

	return &Booking{
		id:               id,
		sid:              sid,
		trainerID:        trainerID,
		status:           status,
		bookingDate:      bookingDate,
		totalPrice:       totalPrice,
		commissionRate:   commissionRate,
		commissionAmount: commissionAmount,
		trainerEarnings:  trainerEarnings,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (b *Booking) ID() uint                { return b.id }
func (b *Booking) SID() string             { return b.sid }
func (b *Booking) TrainerID() uint         { return b.trainerID }
func (b *Booking) Status() string          { return b.status }
func (b *Booking) BookingDate() time.Time  { return b.bookingDate }
func (b *Booking) TotalPrice() int64       { return b.totalPrice }
func (b *Booking) CommissionRate() int     { return b.commissionRate }
func (b *Booking) CommissionAmount() int64 { return b.commissionAmount }
func (b *Booking) TrainerEarnings() int64  { return b.trainerEarnings }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time    { return b.updatedAt }

// ApplyCommission splits the booking price at the given percent rate.
// The commission is rounded half-up to the minor unit once; the trainer
// earnings are the exact remainder, so the two always sum to the total.
func (b *Booking) ApplyCommission(rate int) error {
	if rate < 0 || rate > 100 {
		return fmt.Errorf("commission rate must be between 0 and 100")
	}

	b.commissionRate = rate
	b.commissionAmount = CommissionAmount(b.totalPrice, rate)
	b.trainerEarnings = b.totalPrice - b.commissionAmount
	b.updatedAt = time.Now().UTC()
	return nil
}

// CommissionAmount computes round-half-up(total * rate / 100) in minor
// units using integer arithmetic.
func CommissionAmount(totalPrice int64, rate int) int64 {
	return (totalPrice*int64(rate) + 50) / 100
}
