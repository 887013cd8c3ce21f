package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	"github.com/fitmo-inc/fitmo/internal/shared/biztime"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type UpgradePlanCommand struct {
	TrainerID  uint
	NewPlanKey string
}

// UpgradeResultDTO reports the outcome of a plan change. AmountDue is the
// prorated charge in minor units; zero during an active trial.
type UpgradeResultDTO struct {
	AmountDue    int64            `json:"amount_due"`
	Currency     string           `json:"currency"`
	Subscription *SubscriptionDTO `json:"subscription"`
}

type UpgradePlanUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         plan.Repository
	logger           logger.Interface
}

func NewUpgradePlanUseCase(
	subscriptionRepo subscription.Repository,
	planRepo plan.Repository,
	logger logger.Interface,
) *UpgradePlanUseCase {
	return &UpgradePlanUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		logger:           logger,
	}
}

func (uc *UpgradePlanUseCase) Execute(ctx context.Context, cmd UpgradePlanCommand) (*UpgradeResultDTO, error) {
	sub, oldPlan, newPlan, err := resolveUpgrade(ctx, uc.subscriptionRepo, uc.planRepo, uc.logger, cmd.TrainerID, cmd.NewPlanKey)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	amountDue := upgradeAmountDue(sub, oldPlan, newPlan, now)

	// The plan reference swaps in place. A running trial keeps its window
	// and simply continues on the new plan.
	if err := sub.ChangePlan(newPlan.ID()); err != nil {
		if errors.Is(err, subscription.ErrAlreadyOnPlan) {
			return nil, apperrors.NewConflictError("already on this plan")
		}
		return nil, fmt.Errorf("failed to change plan: %w", err)
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to save subscription", "error", err, "trainer_id", cmd.TrainerID)
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	uc.logger.Infow("plan changed",
		"trainer_id", cmd.TrainerID,
		"new_plan_key", cmd.NewPlanKey,
		"amount_due", amountDue,
	)

	return &UpgradeResultDTO{
		AmountDue:    amountDue,
		Currency:     plan.Currency,
		Subscription: ToSubscriptionDTO(sub, newPlan, now),
	}, nil
}

// resolveUpgrade loads and validates the subscription and both plans for a
// plan change. Shared by the upgrade and the preview paths.
func resolveUpgrade(
	ctx context.Context,
	subscriptionRepo subscription.Repository,
	planRepo plan.Repository,
	log logger.Interface,
	trainerID uint,
	newPlanKey string,
) (*subscription.TrainerSubscription, *plan.Plan, *plan.Plan, error) {
	key, err := plan.ParseKey(newPlanKey)
	if err != nil {
		return nil, nil, nil, apperrors.NewValidationError(fmt.Sprintf("unknown plan key: %s", newPlanKey))
	}

	newPlan, err := planRepo.GetByKey(ctx, key)
	if err != nil {
		log.Errorw("failed to get new plan", "error", err, "plan_key", newPlanKey)
		return nil, nil, nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if newPlan == nil || !newPlan.IsActive() {
		return nil, nil, nil, apperrors.NewNotFoundError("plan not found")
	}
	if newPlan.IsOrgPlan() {
		return nil, nil, nil, apperrors.NewValidationError("organization plans cannot be started by individual trainers")
	}

	sub, err := subscriptionRepo.GetByTrainerID(ctx, trainerID)
	if err != nil {
		log.Errorw("failed to get subscription", "error", err, "trainer_id", trainerID)
		return nil, nil, nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil || sub.PlanID() == nil {
		return nil, nil, nil, apperrors.NewNotFoundError("trainer has no subscription")
	}
	if sub.OrganizationID() != nil {
		return nil, nil, nil, apperrors.NewConflictError("trainer is covered by an organization plan")
	}

	oldPlan, err := planRepo.GetByID(ctx, *sub.PlanID())
	if err != nil {
		log.Errorw("failed to get current plan", "error", err, "plan_id", *sub.PlanID())
		return nil, nil, nil, fmt.Errorf("failed to get current plan: %w", err)
	}

	return sub, oldPlan, newPlan, nil
}

// upgradeAmountDue computes the prorated charge for switching plans now.
// Active trials owe nothing; paid periods owe the cost of the remaining days
// plus a fresh cycle on the new plan, credited for the unused old-plan days.
func upgradeAmountDue(sub *subscription.TrainerSubscription, oldPlan, newPlan *plan.Plan, now time.Time) int64 {
	if sub.IsTrial() {
		return 0
	}
	var oldMonthly int64
	if oldPlan != nil {
		oldMonthly = oldPlan.PriceMonthly()
	}
	remaining := subscription.RemainingDays(sub.SubscriptionEnd(), now)
	return subscription.ProratedUpgradeAmount(oldMonthly, newPlan.PriceMonthly(), remaining)
}
