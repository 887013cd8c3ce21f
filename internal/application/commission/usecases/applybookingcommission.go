package usecases

import (
	"context"
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/booking"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	"github.com/fitmo-inc/fitmo/internal/shared/biztime"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type ApplyBookingCommissionCommand struct {
	BookingSID string
}

// CommissionResultDTO reports the commission split applied to a booking.
// Amounts are in minor units; commission plus earnings equals the total.
type CommissionResultDTO struct {
	BookingSID       string `json:"booking_id"`
	TotalPrice       int64  `json:"total_price"`
	CommissionRate   int    `json:"commission_rate"`
	CommissionAmount int64  `json:"commission_amount"`
	TrainerEarnings  int64  `json:"trainer_earnings"`
}

// ApplyBookingCommissionUseCase splits a completed booking's price between
// the platform and the trainer using the trainer's effective plan rate at
// the time of execution.
type ApplyBookingCommissionUseCase struct {
	bookingRepo      booking.Repository
	subscriptionRepo subscription.Repository
	planRepo         plan.Repository
	policy           *subscription.CommissionPolicy
	logger           logger.Interface
}

func NewApplyBookingCommissionUseCase(
	bookingRepo booking.Repository,
	subscriptionRepo subscription.Repository,
	planRepo plan.Repository,
	policy *subscription.CommissionPolicy,
	logger logger.Interface,
) *ApplyBookingCommissionUseCase {
	return &ApplyBookingCommissionUseCase{
		bookingRepo:      bookingRepo,
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		policy:           policy,
		logger:           logger,
	}
}

func (uc *ApplyBookingCommissionUseCase) Execute(ctx context.Context, cmd ApplyBookingCommissionCommand) (*CommissionResultDTO, error) {
	b, err := uc.bookingRepo.GetBySID(ctx, cmd.BookingSID)
	if err != nil {
		uc.logger.Errorw("failed to get booking", "error", err, "booking_id", cmd.BookingSID)
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if b == nil {
		return nil, apperrors.NewNotFoundError("booking not found")
	}
	if b.Status() != booking.StatusCompleted {
		return nil, apperrors.NewConflictError("commission applies to completed bookings only")
	}

	rate, err := uc.effectiveRate(ctx, b.TrainerID())
	if err != nil {
		return nil, err
	}

	if err := b.ApplyCommission(rate); err != nil {
		return nil, fmt.Errorf("failed to apply commission: %w", err)
	}

	if err := uc.bookingRepo.Update(ctx, b); err != nil {
		uc.logger.Errorw("failed to save booking", "error", err, "booking_id", cmd.BookingSID)
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	uc.logger.Infow("commission applied",
		"booking_id", cmd.BookingSID,
		"trainer_id", b.TrainerID(),
		"rate", rate,
		"commission_amount", b.CommissionAmount(),
	)

	return &CommissionResultDTO{
		BookingSID:       b.SID(),
		TotalPrice:       b.TotalPrice(),
		CommissionRate:   b.CommissionRate(),
		CommissionAmount: b.CommissionAmount(),
		TrainerEarnings:  b.TrainerEarnings(),
	}, nil
}

// effectiveRate resolves the trainer's commission rate from their current
// subscription, falling back to the platform default when they have none.
func (uc *ApplyBookingCommissionUseCase) effectiveRate(ctx context.Context, trainerID uint) (int, error) {
	sub, err := uc.subscriptionRepo.GetByTrainerID(ctx, trainerID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "trainer_id", trainerID)
		return 0, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil || sub.PlanID() == nil {
		return uc.policy.DefaultRate(), nil
	}

	p, err := uc.planRepo.GetByID(ctx, *sub.PlanID())
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", *sub.PlanID())
		return 0, fmt.Errorf("failed to get plan: %w", err)
	}

	return uc.policy.EffectiveRate(sub, p, biztime.NowUTC()), nil
}
