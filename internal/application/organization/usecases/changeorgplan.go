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

type ChangeOrgPlanCommand struct {
	RequesterID     uint
	OrganizationSID string
	NewPlanKey      string
}

// ChangeOrgPlanUseCase moves an organization to a different organization
// plan. Purchased overage seats do not carry over; the target plan's included
// seats must cover the current headcount on their own. Member subscriptions
// are repointed so commission lookups resolve against the new plan.
type ChangeOrgPlanUseCase struct {
	orgRepo          organization.Repository
	planRepo         plan.Repository
	subscriptionRepo subscription.Repository
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewChangeOrgPlanUseCase(
	orgRepo organization.Repository,
	planRepo plan.Repository,
	subscriptionRepo subscription.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *ChangeOrgPlanUseCase {
	return &ChangeOrgPlanUseCase{
		orgRepo:          orgRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *ChangeOrgPlanUseCase) Execute(ctx context.Context, cmd ChangeOrgPlanCommand) (*OrganizationDTO, error) {
	key, err := plan.ParseKey(cmd.NewPlanKey)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown plan key: %s", cmd.NewPlanKey))
	}

	newPlan, err := uc.planRepo.GetByKey(ctx, key)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_key", cmd.NewPlanKey)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if newPlan == nil || !newPlan.IsActive() {
		return nil, apperrors.NewNotFoundError("plan not found")
	}
	if !newPlan.IsOrgPlan() {
		return nil, apperrors.NewValidationError("plan is not an organization plan")
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
		return nil, apperrors.NewForbiddenError("only the organization owner can change the plan")
	}

	var changed *organization.Organization
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		locked, err := uc.orgRepo.GetByIDForUpdate(txCtx, org.ID())
		if err != nil {
			return fmt.Errorf("failed to lock organization: %w", err)
		}

		if err := locked.ChangePlan(newPlan); err != nil {
			switch {
			case errors.Is(err, organization.ErrAlreadyOnPlan):
				return apperrors.NewConflictError("already on this plan")
			case errors.Is(err, organization.ErrInsufficientSeats):
				return apperrors.NewConflictError(err.Error())
			case errors.Is(err, organization.ErrNoPlan):
				return apperrors.NewConflictError("organization has no plan")
			default:
				return err
			}
		}

		members, err := uc.subscriptionRepo.GetByOrganizationID(txCtx, locked.ID())
		if err != nil {
			return fmt.Errorf("failed to list member subscriptions: %w", err)
		}
		for _, sub := range members {
			if err := sub.ChangePlan(newPlan.ID()); err != nil {
				if errors.Is(err, subscription.ErrAlreadyOnPlan) {
					continue
				}
				return err
			}
			if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
				return fmt.Errorf("failed to save member subscription: %w", err)
			}
		}

		changed = locked
		return uc.orgRepo.Update(txCtx, locked)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("organization plan changed",
		"organization_sid", cmd.OrganizationSID,
		"new_plan_key", cmd.NewPlanKey,
	)

	return ToOrganizationDTO(changed, newPlan), nil
}
