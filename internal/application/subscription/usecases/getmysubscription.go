package usecases

import (
	"context"
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/biztime"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type GetMySubscriptionCommand struct {
	TrainerID uint
}

type GetMySubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         plan.Repository
	orgRepo          organization.Repository
	logger           logger.Interface
}

func NewGetMySubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	planRepo plan.Repository,
	orgRepo organization.Repository,
	logger logger.Interface,
) *GetMySubscriptionUseCase {
	return &GetMySubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		orgRepo:          orgRepo,
		logger:           logger,
	}
}

func (uc *GetMySubscriptionUseCase) Execute(ctx context.Context, cmd GetMySubscriptionCommand) (*SubscriptionDTO, error) {
	sub, err := uc.subscriptionRepo.GetByTrainerID(ctx, cmd.TrainerID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "trainer_id", cmd.TrainerID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("trainer has no subscription")
	}

	var p *plan.Plan
	if sub.PlanID() != nil {
		p, err = uc.planRepo.GetByID(ctx, *sub.PlanID())
		if err != nil {
			uc.logger.Errorw("failed to get plan", "error", err, "plan_id", *sub.PlanID())
			return nil, fmt.Errorf("failed to get plan: %w", err)
		}
	}

	dto := ToSubscriptionDTO(sub, p, biztime.NowUTC())

	if sub.OrganizationID() != nil {
		org, err := uc.orgRepo.GetByID(ctx, *sub.OrganizationID())
		if err != nil {
			uc.logger.Warnw("failed to resolve organization", "error", err, "organization_id", *sub.OrganizationID())
		} else if org != nil {
			dto.OrganizationSID = org.SID()
		}
	}

	return dto, nil
}
