package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	"github.com/fitmo-inc/fitmo/internal/shared/db"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type AddTrainerCommand struct {
	RequesterID     uint
	OrganizationSID string
	TrainerID       uint
}

// AddTrainerUseCase seats a trainer in an organization. The seat check and
// the seat increment run under a row lock in one transaction, so concurrent
// additions cannot overshoot capacity.
type AddTrainerUseCase struct {
	orgRepo          organization.Repository
	planRepo         plan.Repository
	subscriptionRepo subscription.Repository
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewAddTrainerUseCase(
	orgRepo organization.Repository,
	planRepo plan.Repository,
	subscriptionRepo subscription.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *AddTrainerUseCase {
	return &AddTrainerUseCase{
		orgRepo:          orgRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *AddTrainerUseCase) Execute(ctx context.Context, cmd AddTrainerCommand) error {
	org, err := uc.orgRepo.GetBySID(ctx, cmd.OrganizationSID)
	if err != nil {
		uc.logger.Errorw("failed to get organization", "error", err, "organization_sid", cmd.OrganizationSID)
		return fmt.Errorf("failed to get organization: %w", err)
	}
	if org == nil {
		return apperrors.NewNotFoundError("organization not found")
	}
	if org.OwnerID() != cmd.RequesterID {
		return apperrors.NewForbiddenError("only the organization owner can add trainers")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return attachTrainerLocked(txCtx, uc.orgRepo, uc.planRepo, uc.subscriptionRepo, org.ID(), cmd.TrainerID)
	})
	if err != nil {
		return translateSeatError(err)
	}

	uc.logger.Infow("trainer added to organization",
		"organization_sid", cmd.OrganizationSID,
		"trainer_id", cmd.TrainerID,
	)
	return nil
}

// attachTrainerLocked occupies a seat and links the trainer's subscription.
// Must run inside a transaction: the organization row is re-read under a
// row lock so the capacity check and increment are atomic.
func attachTrainerLocked(
	txCtx context.Context,
	orgRepo organization.Repository,
	planRepo plan.Repository,
	subscriptionRepo subscription.Repository,
	orgID, trainerID uint,
) error {
	org, err := orgRepo.GetByIDForUpdate(txCtx, orgID)
	if err != nil {
		return fmt.Errorf("failed to lock organization: %w", err)
	}
	if org == nil {
		return apperrors.NewNotFoundError("organization not found")
	}
	if org.PlanID() == nil {
		return organization.ErrNoPlan
	}

	p, err := planRepo.GetByID(txCtx, *org.PlanID())
	if err != nil {
		return fmt.Errorf("failed to get organization plan: %w", err)
	}

	if err := org.OccupySeat(p); err != nil {
		return err
	}

	sub, _, err := subscriptionRepo.GetOrCreateByTrainerID(txCtx, trainerID)
	if err != nil {
		return fmt.Errorf("failed to get trainer subscription: %w", err)
	}
	if err := sub.AttachOrganization(org.ID(), p.ID()); err != nil {
		return err
	}

	if err := subscriptionRepo.Update(txCtx, sub); err != nil {
		return fmt.Errorf("failed to save trainer subscription: %w", err)
	}
	return orgRepo.Update(txCtx, org)
}

// translateSeatError maps domain seat and membership errors onto API error
// types; anything else passes through unchanged.
func translateSeatError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, organization.ErrNoSeatsAvailable):
		return apperrors.NewConflictError(err.Error())
	case errors.Is(err, organization.ErrNoPlan):
		return apperrors.NewConflictError("organization has no plan")
	case errors.Is(err, subscription.ErrAlreadyInOrganization):
		return apperrors.NewConflictError("trainer is already in this organization")
	case errors.Is(err, subscription.ErrAlreadyInOtherOrganization):
		return apperrors.NewConflictError("trainer is already in another organization")
	default:
		return err
	}
}
