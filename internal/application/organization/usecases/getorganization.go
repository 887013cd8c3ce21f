package usecases

import (
	"context"
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type GetOrganizationCommand struct {
	OrganizationSID string
}

type GetOrganizationUseCase struct {
	orgRepo  organization.Repository
	planRepo plan.Repository
	logger   logger.Interface
}

func NewGetOrganizationUseCase(
	orgRepo organization.Repository,
	planRepo plan.Repository,
	logger logger.Interface,
) *GetOrganizationUseCase {
	return &GetOrganizationUseCase{
		orgRepo:  orgRepo,
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *GetOrganizationUseCase) Execute(ctx context.Context, cmd GetOrganizationCommand) (*OrganizationDTO, error) {
	org, err := uc.orgRepo.GetBySID(ctx, cmd.OrganizationSID)
	if err != nil {
		uc.logger.Errorw("failed to get organization", "error", err, "organization_sid", cmd.OrganizationSID)
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org == nil {
		return nil, apperrors.NewNotFoundError("organization not found")
	}

	var p *plan.Plan
	if org.PlanID() != nil {
		p, err = uc.planRepo.GetByID(ctx, *org.PlanID())
		if err != nil {
			uc.logger.Errorw("failed to get plan", "error", err, "plan_id", *org.PlanID())
			return nil, fmt.Errorf("failed to get plan: %w", err)
		}
	}

	return ToOrganizationDTO(org, p), nil
}
