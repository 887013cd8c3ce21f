package usecases

import (
	"context"
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/billing"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	"github.com/fitmo-inc/fitmo/internal/shared/biztime"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	TrainerID uint
}

type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	billingSubRepo   billing.SubscriptionRepository
	gateway          billing.PaymentGateway
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	billingSubRepo billing.SubscriptionRepository,
	gateway billing.PaymentGateway,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		billingSubRepo:   billingSubRepo,
		gateway:          gateway,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) error {
	sub, err := uc.subscriptionRepo.GetByTrainerID(ctx, cmd.TrainerID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "trainer_id", cmd.TrainerID)
		return fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return apperrors.NewNotFoundError("trainer has no subscription")
	}
	if sub.OrganizationID() != nil {
		return apperrors.NewConflictError("organization-covered subscriptions are cancelled by leaving the organization")
	}
	if !sub.IsActive() {
		return apperrors.NewConflictError("subscription is already cancelled")
	}

	sub.Cancel()
	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to save subscription", "error", err, "trainer_id", cmd.TrainerID)
		return fmt.Errorf("failed to save subscription: %w", err)
	}

	// Best effort on the provider side: the webhook confirms the final state
	// if this call fails.
	bsub, err := uc.billingSubRepo.GetByTrainerSubscriptionID(ctx, sub.ID())
	if err != nil {
		uc.logger.Warnw("failed to look up billing subscription", "error", err, "subscription_id", sub.ID())
	} else if bsub != nil && bsub.ProviderSubscriptionID() != "" {
		if err := uc.gateway.CancelSubscription(ctx, bsub.ProviderSubscriptionID()); err != nil {
			uc.logger.Warnw("failed to cancel provider subscription",
				"error", err,
				"provider_subscription_id", bsub.ProviderSubscriptionID(),
			)
		} else {
			bsub.MarkCancelled(biztime.NowUTC())
			if err := uc.billingSubRepo.Update(ctx, bsub); err != nil {
				uc.logger.Warnw("failed to save billing subscription", "error", err, "billing_subscription_id", bsub.ID())
			}
		}
	}

	uc.logger.Infow("subscription cancelled", "trainer_id", cmd.TrainerID, "subscription_id", sub.ID())
	return nil
}
