package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/fitmo-inc/fitmo/internal/domain/booking"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type GetEarningsCommand struct {
	TrainerID uint
	Start     *time.Time
	End       *time.Time
}

// EarningsSummaryDTO aggregates a trainer's completed bookings. Amounts are
// in minor units; AverageCommissionRate is a percentage of total revenue.
type EarningsSummaryDTO struct {
	TrainerID             uint    `json:"trainer_id"`
	BookingCount          int64   `json:"booking_count"`
	TotalRevenue          int64   `json:"total_revenue"`
	TotalCommission       int64   `json:"total_commission"`
	TotalEarnings         int64   `json:"total_earnings"`
	AverageCommissionRate float64 `json:"average_commission_rate"`
	Currency              string  `json:"currency"`
}

type GetEarningsUseCase struct {
	bookingRepo booking.Repository
	logger      logger.Interface
}

func NewGetEarningsUseCase(bookingRepo booking.Repository, logger logger.Interface) *GetEarningsUseCase {
	return &GetEarningsUseCase{bookingRepo: bookingRepo, logger: logger}
}

func (uc *GetEarningsUseCase) Execute(ctx context.Context, cmd GetEarningsCommand) (*EarningsSummaryDTO, error) {
	summary, err := uc.bookingRepo.SummarizeEarnings(ctx, cmd.TrainerID, cmd.Start, cmd.End)
	if err != nil {
		uc.logger.Errorw("failed to summarize earnings", "error", err, "trainer_id", cmd.TrainerID)
		return nil, fmt.Errorf("failed to summarize earnings: %w", err)
	}

	var avgRate float64
	if summary.TotalRevenue > 0 {
		avgRate = float64(summary.TotalCommission) / float64(summary.TotalRevenue) * 100
	}

	return &EarningsSummaryDTO{
		TrainerID:             cmd.TrainerID,
		BookingCount:          summary.BookingCount,
		TotalRevenue:          summary.TotalRevenue,
		TotalCommission:       summary.TotalCommission,
		TotalEarnings:         summary.TotalEarnings,
		AverageCommissionRate: avgRate,
		Currency:              plan.Currency,
	}, nil
}
