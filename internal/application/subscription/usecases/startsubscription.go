package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	"github.com/fitmo-inc/fitmo/internal/shared/biztime"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type StartSubscriptionCommand struct {
	TrainerID uint
	PlanKey   string
	// UseTrial starts the plan's free trial instead of a paid period. Each
	// trainer gets at most one trial, ever.
	UseTrial bool
}

type StartSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         plan.Repository
	logger           logger.Interface
}

func NewStartSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	planRepo plan.Repository,
	logger logger.Interface,
) *StartSubscriptionUseCase {
	return &StartSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		logger:           logger,
	}
}

func (uc *StartSubscriptionUseCase) Execute(ctx context.Context, cmd StartSubscriptionCommand) (*SubscriptionDTO, error) {
	key, err := plan.ParseKey(cmd.PlanKey)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown plan key: %s", cmd.PlanKey))
	}

	p, err := uc.planRepo.GetByKey(ctx, key)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_key", cmd.PlanKey)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil || !p.IsActive() {
		return nil, apperrors.NewNotFoundError("plan not found")
	}
	if p.IsOrgPlan() {
		return nil, apperrors.NewValidationError("organization plans cannot be started by individual trainers")
	}

	sub, created, err := uc.subscriptionRepo.GetOrCreateByTrainerID(ctx, cmd.TrainerID)
	if err != nil {
		uc.logger.Errorw("failed to get or create subscription", "error", err, "trainer_id", cmd.TrainerID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	now := biztime.NowUTC()
	if sub.OrganizationID() != nil {
		return nil, apperrors.NewConflictError("trainer is covered by an organization plan")
	}
	if sub.IsSubscriptionActive(now) {
		return nil, apperrors.NewConflictError("trainer already has an active subscription")
	}

	if cmd.UseTrial {
		err = sub.StartTrial(p, now)
	} else {
		err = sub.StartPaid(p, now)
	}
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrTrialAlreadyUsed):
			return nil, apperrors.NewConflictError("free trial already used")
		case errors.Is(err, subscription.ErrTrialNotAvailable):
			return nil, apperrors.NewValidationError("plan does not offer a trial")
		default:
			return nil, fmt.Errorf("failed to start subscription: %w", err)
		}
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to save subscription", "error", err, "trainer_id", cmd.TrainerID)
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	uc.logger.Infow("subscription started",
		"trainer_id", cmd.TrainerID,
		"plan_key", cmd.PlanKey,
		"trial", cmd.UseTrial,
		"created", created,
	)

	return ToSubscriptionDTO(sub, p, now), nil
}
