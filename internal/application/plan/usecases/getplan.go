package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type GetPlanCommand struct {
	Key string
}

type GetPlanUseCase struct {
	planRepo plan.Repository
	logger   logger.Interface
}

func NewGetPlanUseCase(planRepo plan.Repository, logger logger.Interface) *GetPlanUseCase {
	return &GetPlanUseCase{planRepo: planRepo, logger: logger}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, cmd GetPlanCommand) (*PlanDTO, error) {
	key, err := plan.ParseKey(cmd.Key)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown plan key: %s", cmd.Key))
	}

	p, err := uc.planRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, plan.ErrUnknownPlan) {
			return nil, apperrors.NewNotFoundError("plan not found")
		}
		uc.logger.Errorw("failed to get plan", "error", err, "plan_key", cmd.Key)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, apperrors.NewNotFoundError("plan not found")
	}

	dto := ToPlanDTO(p)
	return &dto, nil
}
