package booking

import (
	"context"
	"time"
)

// EarningsSummary aggregates the completed bookings of a trainer over an
// optional date range. Amounts are in minor currency units.
type EarningsSummary struct {
	TrainerID       uint
	BookingCount    int64
	TotalRevenue    int64
	TotalCommission int64
	TotalEarnings   int64
}

// Repository persists the commission slice of bookings.
type Repository interface {
	GetByID(ctx context.Context, id uint) (*Booking, error)
	GetBySID(ctx context.Context, sid string) (*Booking, error)
	Update(ctx context.Context, b *Booking) error
	ListCompletedByTrainer(ctx context.Context, trainerID uint, start, end *time.Time) ([]*Booking, error)
	SummarizeEarnings(ctx context.Context, trainerID uint, start, end *time.Time) (*EarningsSummary, error)
}
