package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	"github.com/fitmo-inc/fitmo/internal/shared/biztime"
	"github.com/fitmo-inc/fitmo/internal/shared/db"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type AcceptInvitationCommand struct {
	Token        string
	TrainerID    uint
	TrainerEmail string
}

// AcceptInvitationUseCase consumes an invitation token and seats the trainer.
// Consuming the invitation and occupying the seat happen in one transaction:
// seat capacity may have changed since the invite was sent, so it is
// re-validated under the organization row lock.
type AcceptInvitationUseCase struct {
	orgRepo          organization.Repository
	invitationRepo   organization.InvitationRepository
	planRepo         plan.Repository
	subscriptionRepo subscription.Repository
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewAcceptInvitationUseCase(
	orgRepo organization.Repository,
	invitationRepo organization.InvitationRepository,
	planRepo plan.Repository,
	subscriptionRepo subscription.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *AcceptInvitationUseCase {
	return &AcceptInvitationUseCase{
		orgRepo:          orgRepo,
		invitationRepo:   invitationRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *AcceptInvitationUseCase) Execute(ctx context.Context, cmd AcceptInvitationCommand) (*OrganizationDTO, error) {
	if cmd.Token == "" {
		return nil, apperrors.NewValidationError("invitation token is required")
	}

	var org *organization.Organization
	var orgPlan *plan.Plan

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		inv, err := uc.invitationRepo.GetByToken(txCtx, cmd.Token)
		if err != nil {
			return fmt.Errorf("failed to look up invitation: %w", err)
		}
		if inv == nil {
			return apperrors.NewNotFoundError("invalid invitation token")
		}

		now := biztime.NowUTC()
		if err := inv.Accept(cmd.TrainerID, cmd.TrainerEmail, now); err != nil {
			switch {
			case errors.Is(err, organization.ErrInvitationNotValid):
				return apperrors.NewConflictError("invitation has expired or was already accepted")
			case errors.Is(err, organization.ErrEmailMismatch):
				return apperrors.NewForbiddenError("invitation is for a different email address")
			default:
				return err
			}
		}

		if err := attachTrainerLocked(txCtx, uc.orgRepo, uc.planRepo, uc.subscriptionRepo, inv.OrganizationID(), cmd.TrainerID); err != nil {
			return err
		}

		if err := uc.invitationRepo.Update(txCtx, inv); err != nil {
			return fmt.Errorf("failed to save invitation: %w", err)
		}

		org, err = uc.orgRepo.GetByID(txCtx, inv.OrganizationID())
		if err != nil {
			return fmt.Errorf("failed to reload organization: %w", err)
		}
		if org.PlanID() != nil {
			orgPlan, err = uc.planRepo.GetByID(txCtx, *org.PlanID())
			if err != nil {
				return fmt.Errorf("failed to get organization plan: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateSeatError(err)
	}

	uc.logger.Infow("invitation accepted",
		"organization_sid", org.SID(),
		"trainer_id", cmd.TrainerID,
	)

	return ToOrganizationDTO(org, orgPlan), nil
}
