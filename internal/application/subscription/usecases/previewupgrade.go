package usecases

import (
	"context"

	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	"github.com/fitmo-inc/fitmo/internal/shared/biztime"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type PreviewUpgradeCommand struct {
	TrainerID  uint
	NewPlanKey string
}

// UpgradePreviewDTO is the quoted cost of a plan change without applying it.
type UpgradePreviewDTO struct {
	CurrentPlanKey string `json:"current_plan_key"`
	NewPlanKey     string `json:"new_plan_key"`
	RemainingDays  int    `json:"remaining_days"`
	AmountDue      int64  `json:"amount_due"`
	Currency       string `json:"currency"`
}

type PreviewUpgradeUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         plan.Repository
	logger           logger.Interface
}

func NewPreviewUpgradeUseCase(
	subscriptionRepo subscription.Repository,
	planRepo plan.Repository,
	logger logger.Interface,
) *PreviewUpgradeUseCase {
	return &PreviewUpgradeUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		logger:           logger,
	}
}

func (uc *PreviewUpgradeUseCase) Execute(ctx context.Context, cmd PreviewUpgradeCommand) (*UpgradePreviewDTO, error) {
	sub, oldPlan, newPlan, err := resolveUpgrade(ctx, uc.subscriptionRepo, uc.planRepo, uc.logger, cmd.TrainerID, cmd.NewPlanKey)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	preview := &UpgradePreviewDTO{
		NewPlanKey: cmd.NewPlanKey,
		AmountDue:  upgradeAmountDue(sub, oldPlan, newPlan, now),
		Currency:   plan.Currency,
	}
	if oldPlan != nil {
		preview.CurrentPlanKey = string(oldPlan.Key())
	}
	if !sub.IsTrial() {
		preview.RemainingDays = subscription.RemainingDays(sub.SubscriptionEnd(), now)
	}

	return preview, nil
}
