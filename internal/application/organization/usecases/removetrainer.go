package usecases

import (
	"context"
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	"github.com/fitmo-inc/fitmo/internal/shared/db"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type RemoveTrainerCommand struct {
	RequesterID     uint
	OrganizationSID string
	TrainerID       uint
}

// RemoveTrainerUseCase detaches a trainer from an organization and releases
// their seat. The owner can remove anyone but themselves; a trainer can
// remove themselves (leave).
type RemoveTrainerUseCase struct {
	orgRepo          organization.Repository
	subscriptionRepo subscription.Repository
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewRemoveTrainerUseCase(
	orgRepo organization.Repository,
	subscriptionRepo subscription.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *RemoveTrainerUseCase {
	return &RemoveTrainerUseCase{
		orgRepo:          orgRepo,
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *RemoveTrainerUseCase) Execute(ctx context.Context, cmd RemoveTrainerCommand) error {
	org, err := uc.orgRepo.GetBySID(ctx, cmd.OrganizationSID)
	if err != nil {
		uc.logger.Errorw("failed to get organization", "error", err, "organization_sid", cmd.OrganizationSID)
		return fmt.Errorf("failed to get organization: %w", err)
	}
	if org == nil {
		return apperrors.NewNotFoundError("organization not found")
	}

	isOwner := org.OwnerID() == cmd.RequesterID
	if !isOwner && cmd.RequesterID != cmd.TrainerID {
		return apperrors.NewForbiddenError("only the organization owner can remove other trainers")
	}
	if cmd.TrainerID == org.OwnerID() {
		return apperrors.NewConflictError("the organization owner cannot release their own seat")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		locked, err := uc.orgRepo.GetByIDForUpdate(txCtx, org.ID())
		if err != nil {
			return fmt.Errorf("failed to lock organization: %w", err)
		}

		sub, err := uc.subscriptionRepo.GetByTrainerID(txCtx, cmd.TrainerID)
		if err != nil {
			return fmt.Errorf("failed to get trainer subscription: %w", err)
		}
		if sub == nil || !sub.IsMemberOf(locked.ID()) {
			return apperrors.NewNotFoundError("trainer is not in this organization")
		}

		sub.DetachOrganization()
		locked.ReleaseSeat()

		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return fmt.Errorf("failed to save trainer subscription: %w", err)
		}
		return uc.orgRepo.Update(txCtx, locked)
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("trainer removed from organization",
		"organization_sid", cmd.OrganizationSID,
		"trainer_id", cmd.TrainerID,
	)
	return nil
}
