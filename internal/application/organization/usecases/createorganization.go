package usecases

import (
	"context"
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/shared/biztime"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type CreateOrganizationCommand struct {
	OwnerID    uint
	OwnerEmail string
	Name       string
	Email      string
	PlanKey    string
}

// CreateOrganizationUseCase creates an organization, optionally attaching an
// organization plan with a trial window. Seats stay empty until trainers are
// added or accept invitations.
type CreateOrganizationUseCase struct {
	orgRepo  organization.Repository
	planRepo plan.Repository
	logger   logger.Interface
}

func NewCreateOrganizationUseCase(
	orgRepo organization.Repository,
	planRepo plan.Repository,
	logger logger.Interface,
) *CreateOrganizationUseCase {
	return &CreateOrganizationUseCase{
		orgRepo:  orgRepo,
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *CreateOrganizationUseCase) Execute(ctx context.Context, cmd CreateOrganizationCommand) (*OrganizationDTO, error) {
	var p *plan.Plan
	if cmd.PlanKey != "" {
		key, err := plan.ParseKey(cmd.PlanKey)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown plan key: %s", cmd.PlanKey))
		}

		p, err = uc.planRepo.GetByKey(ctx, key)
		if err != nil {
			uc.logger.Errorw("failed to get plan", "error", err, "plan_key", cmd.PlanKey)
			return nil, fmt.Errorf("failed to get plan: %w", err)
		}
		if p == nil || !p.IsActive() {
			return nil, apperrors.NewNotFoundError("plan not found")
		}
		if !p.IsOrgPlan() {
			return nil, apperrors.NewValidationError("plan is not an organization plan")
		}
	}

	exists, err := uc.orgRepo.ExistsByOwnerID(ctx, cmd.OwnerID)
	if err != nil {
		uc.logger.Errorw("failed to check owner", "error", err, "owner_id", cmd.OwnerID)
		return nil, fmt.Errorf("failed to check owner: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("owner already has an organization")
	}

	org, err := organization.NewOrganization(cmd.OwnerID, cmd.Name, cmd.Email)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if p != nil {
		if err := org.AttachPlanWithTrial(p, biztime.NowUTC()); err != nil {
			return nil, fmt.Errorf("failed to attach plan: %w", err)
		}
	}

	if err := uc.orgRepo.Create(ctx, org); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, apperrors.NewConflictError("owner already has an organization")
		}
		uc.logger.Errorw("failed to create organization", "error", err, "owner_id", cmd.OwnerID)
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	uc.logger.Infow("organization created",
		"organization_sid", org.SID(),
		"owner_id", cmd.OwnerID,
		"plan_key", cmd.PlanKey,
	)

	return ToOrganizationDTO(org, p), nil
}
