package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/shared/biztime"
	"github.com/fitmo-inc/fitmo/internal/shared/db"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type PurchaseSeatsCommand struct {
	RequesterID     uint
	OrganizationSID string
	SeatCount       int
}

// SeatPurchaseDTO reports a completed overage purchase. Prices are in minor
// units at the plan's per-seat overage rate.
type SeatPurchaseDTO struct {
	OrganizationSID string `json:"organization_id"`
	SeatsPurchased  int    `json:"seats_purchased"`
	PricePerSeat    int64  `json:"price_per_seat"`
	TotalPrice      int64  `json:"total_price"`
	Currency        string `json:"currency"`
	TotalSeats      int    `json:"total_seats"`
	AvailableSeats  int    `json:"available_seats"`
}

// PurchaseSeatsUseCase buys extra seats beyond the plan's included count.
type PurchaseSeatsUseCase struct {
	orgRepo     organization.Repository
	planRepo    plan.Repository
	overageRepo organization.SeatOverageRepository
	txManager   *db.TransactionManager
	logger      logger.Interface
}

func NewPurchaseSeatsUseCase(
	orgRepo organization.Repository,
	planRepo plan.Repository,
	overageRepo organization.SeatOverageRepository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *PurchaseSeatsUseCase {
	return &PurchaseSeatsUseCase{
		orgRepo:     orgRepo,
		planRepo:    planRepo,
		overageRepo: overageRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *PurchaseSeatsUseCase) Execute(ctx context.Context, cmd PurchaseSeatsCommand) (*SeatPurchaseDTO, error) {
	if cmd.SeatCount <= 0 {
		return nil, apperrors.NewValidationError("seat count must be at least 1")
	}

	org, err := uc.orgRepo.GetBySID(ctx, cmd.OrganizationSID)
	if err != nil {
		uc.logger.Errorw("failed to get organization", "error", err, "organization_sid", cmd.OrganizationSID)
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org == nil {
		return nil, apperrors.NewNotFoundError("organization not found")
	}
	if org.OwnerID() != cmd.RequesterID {
		return nil, apperrors.NewForbiddenError("only the organization owner can purchase seats")
	}
	if org.PlanID() == nil {
		return nil, apperrors.NewConflictError("organization has no plan")
	}

	p, err := uc.planRepo.GetByID(ctx, *org.PlanID())
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", *org.PlanID())
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	var result *SeatPurchaseDTO
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		locked, err := uc.orgRepo.GetByIDForUpdate(txCtx, org.ID())
		if err != nil {
			return fmt.Errorf("failed to lock organization: %w", err)
		}

		if err := locked.AddExtraSeats(cmd.SeatCount); err != nil {
			if errors.Is(err, organization.ErrInvalidSeatCount) {
				return apperrors.NewValidationError("seat count must be at least 1")
			}
			return err
		}

		overage, err := organization.NewSeatOverage(locked.ID(), cmd.SeatCount, p.OveragePricePerSeat(), biztime.NowUTC())
		if err != nil {
			return fmt.Errorf("failed to record seat purchase: %w", err)
		}
		if err := uc.overageRepo.Create(txCtx, overage); err != nil {
			return fmt.Errorf("failed to save seat purchase: %w", err)
		}
		if err := uc.orgRepo.Update(txCtx, locked); err != nil {
			return fmt.Errorf("failed to save organization: %w", err)
		}

		result = &SeatPurchaseDTO{
			OrganizationSID: locked.SID(),
			SeatsPurchased:  overage.SeatsPurchased(),
			PricePerSeat:    overage.PricePerSeat(),
			TotalPrice:      overage.TotalPrice(),
			Currency:        plan.Currency,
			TotalSeats:      locked.TotalSeats(p),
			AvailableSeats:  locked.AvailableSeats(p),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("seats purchased",
		"organization_sid", cmd.OrganizationSID,
		"seat_count", cmd.SeatCount,
		"total_price", result.TotalPrice,
	)

	return result, nil
}
