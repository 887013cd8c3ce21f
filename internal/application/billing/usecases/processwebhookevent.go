package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitmo-inc/fitmo/internal/domain/billing"
	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	"github.com/fitmo-inc/fitmo/internal/shared/biztime"
	"github.com/fitmo-inc/fitmo/internal/shared/db"
	"github.com/fitmo-inc/fitmo/internal/shared/id"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

// Webhook event types the reconciler handles. Anything else is acknowledged
// and ignored so the provider does not retry forever.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventInvoicePaid         = "invoice.payment_succeeded"
	EventInvoiceFailed       = "invoice.payment_failed"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

// WebhookEventCommand is a provider event normalized by the transport layer.
// Amounts are in minor currency units.
type WebhookEventCommand struct {
	EventID                string
	Type                   string
	ProviderCustomerID     string
	ProviderSubscriptionID string
	ProviderInvoiceID      string
	ProviderStatus         string
	AmountDue              int64
	PeriodStart            time.Time
	PeriodEnd              time.Time

	// InvoicePaid mirrors the provider invoice's paid flag. A payment
	// success event whose invoice is not marked paid is ignored.
	InvoicePaid bool

	// SubjectSID identifies the internal billing subject on checkout
	// completion: a trainer subscription SID or an organization SID.
	SubjectSID string
	PlanKey    string
	Cycle      string
}

// ProcessWebhookEventUseCase reconciles provider webhook events against the
// local billing state. Replays are harmless: invoices are deduplicated on
// the provider invoice id and state transitions are idempotent.
type ProcessWebhookEventUseCase struct {
	billingSubRepo   billing.SubscriptionRepository
	invoiceRepo      billing.InvoiceRepository
	subscriptionRepo subscription.Repository
	orgRepo          organization.Repository
	planRepo         plan.Repository
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewProcessWebhookEventUseCase(
	billingSubRepo billing.SubscriptionRepository,
	invoiceRepo billing.InvoiceRepository,
	subscriptionRepo subscription.Repository,
	orgRepo organization.Repository,
	planRepo plan.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *ProcessWebhookEventUseCase {
	return &ProcessWebhookEventUseCase{
		billingSubRepo:   billingSubRepo,
		invoiceRepo:      invoiceRepo,
		subscriptionRepo: subscriptionRepo,
		orgRepo:          orgRepo,
		planRepo:         planRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *ProcessWebhookEventUseCase) Execute(ctx context.Context, cmd WebhookEventCommand) error {
	switch cmd.Type {
	case EventCheckoutCompleted:
		return uc.handleCheckoutCompleted(ctx, cmd)
	case EventInvoicePaid:
		return uc.handleInvoicePaid(ctx, cmd)
	case EventInvoiceFailed:
		return uc.handleInvoiceFailed(ctx, cmd)
	case EventSubscriptionUpdated:
		return uc.handleSubscriptionUpdated(ctx, cmd)
	case EventSubscriptionDeleted:
		return uc.handleSubscriptionDeleted(ctx, cmd)
	default:
		uc.logger.Infow("ignoring unhandled webhook event type", "event_type", cmd.Type, "event_id", cmd.EventID)
		return nil
	}
}

// handleCheckoutCompleted links a finished checkout session to its internal
// subject and opens the paid period. Replays with the same provider
// subscription id are no-ops.
func (uc *ProcessWebhookEventUseCase) handleCheckoutCompleted(ctx context.Context, cmd WebhookEventCommand) error {
	if cmd.ProviderSubscriptionID == "" || cmd.SubjectSID == "" {
		uc.logger.Warnw("checkout event missing references", "event_id", cmd.EventID)
		return nil
	}

	existing, err := uc.billingSubRepo.GetByProviderSubscriptionID(ctx, cmd.ProviderSubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to look up billing subscription: %w", err)
	}
	if existing != nil {
		uc.logger.Infow("checkout already reconciled", "provider_subscription_id", cmd.ProviderSubscriptionID)
		return nil
	}

	key, err := plan.ParseKey(cmd.PlanKey)
	if err != nil {
		uc.logger.Warnw("checkout event references unknown plan", "plan_key", cmd.PlanKey, "event_id", cmd.EventID)
		return nil
	}
	p, err := uc.planRepo.GetByKey(ctx, key)
	if err != nil || p == nil {
		uc.logger.Warnw("checkout event plan not found", "plan_key", cmd.PlanKey, "error", err)
		return nil
	}

	status, known := billing.MapProviderStatus(cmd.ProviderStatus)
	if !known {
		uc.logger.Warnw("unrecognized provider status", "provider_status", cmd.ProviderStatus, "event_id", cmd.EventID)
	}

	cycle := billing.CycleMonthly
	if cmd.Cycle == string(billing.CycleAnnual) {
		cycle = billing.CycleAnnual
	}

	periodEnd := cmd.PeriodEnd
	if periodEnd.IsZero() {
		periodEnd = biztime.NowUTC().Add(subscription.PaidPeriodDays * 24 * time.Hour)
	}

	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var trainerSubID, orgID *uint

		switch {
		case id.HasPrefix(cmd.SubjectSID, id.PrefixSubscription):
			sub, err := uc.findTrainerSubBySID(txCtx, cmd.SubjectSID)
			if err != nil || sub == nil {
				uc.logger.Warnw("checkout subject not found", "subject_sid", cmd.SubjectSID, "error", err)
				return nil
			}
			sid := sub.ID()
			trainerSubID = &sid
			sub.RenewUntil(periodEnd)
			if err := sub.ChangePlan(p.ID()); err != nil && !errors.Is(err, subscription.ErrAlreadyOnPlan) {
				return err
			}
			if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
				return fmt.Errorf("failed to save trainer subscription: %w", err)
			}
		case id.HasPrefix(cmd.SubjectSID, id.PrefixOrganization):
			org, err := uc.orgRepo.GetBySID(txCtx, cmd.SubjectSID)
			if err != nil || org == nil {
				uc.logger.Warnw("checkout subject not found", "subject_sid", cmd.SubjectSID, "error", err)
				return nil
			}
			oid := org.ID()
			orgID = &oid
			org.RenewUntil(periodEnd)
			if err := uc.orgRepo.Update(txCtx, org); err != nil {
				return fmt.Errorf("failed to save organization: %w", err)
			}
		default:
			uc.logger.Warnw("checkout subject SID has unknown prefix", "subject_sid", cmd.SubjectSID)
			return nil
		}

		bsub, err := billing.NewBillingSubscription(
			trainerSubID, orgID,
			p.ID(),
			cmd.ProviderCustomerID, cmd.ProviderSubscriptionID,
			cycle, status,
			cmd.PeriodStart, periodEnd,
		)
		if err != nil {
			return fmt.Errorf("failed to build billing subscription: %w", err)
		}
		if err := uc.billingSubRepo.Create(txCtx, bsub); err != nil {
			return fmt.Errorf("failed to save billing subscription: %w", err)
		}

		uc.logger.Infow("checkout reconciled",
			"provider_subscription_id", cmd.ProviderSubscriptionID,
			"subject_sid", cmd.SubjectSID,
			"plan_key", cmd.PlanKey,
		)
		return nil
	})
}

// handleInvoicePaid records a successful payment. The invoice is keyed on
// the provider invoice id, so a replayed event finds the existing row and
// leaves the ledger with a single paid invoice.
func (uc *ProcessWebhookEventUseCase) handleInvoicePaid(ctx context.Context, cmd WebhookEventCommand) error {
	if !cmd.InvoicePaid {
		uc.logger.Infow("ignoring payment event with unpaid invoice", "provider_invoice_id", cmd.ProviderInvoiceID, "event_id", cmd.EventID)
		return nil
	}

	bsub, err := uc.billingSubRepo.GetByProviderSubscriptionID(ctx, cmd.ProviderSubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to look up billing subscription: %w", err)
	}
	if bsub == nil {
		uc.logger.Warnw("payment event for unknown subscription", "provider_subscription_id", cmd.ProviderSubscriptionID, "event_id", cmd.EventID)
		return nil
	}

	now := biztime.NowUTC()

	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		inv, err := uc.invoiceRepo.GetByProviderInvoiceID(txCtx, cmd.ProviderInvoiceID)
		if err != nil {
			return fmt.Errorf("failed to look up invoice: %w", err)
		}

		if inv == nil {
			inv, err = billing.NewInvoice(
				bsub.ID(),
				bsub.TrainerSubscriptionID(), bsub.OrganizationID(),
				billing.GenerateInvoiceNumber(now, bsub.SID()),
				cmd.AmountDue,
				cmd.PeriodStart, cmd.PeriodEnd,
				now,
			)
			if err != nil {
				return fmt.Errorf("failed to build invoice: %w", err)
			}
			inv.SetProviderInvoiceID(cmd.ProviderInvoiceID)
			inv.MarkPaid(now)
			if err := uc.invoiceRepo.Create(txCtx, inv); err != nil {
				return fmt.Errorf("failed to save invoice: %w", err)
			}
		} else if inv.Status() != billing.InvoiceStatusPaid {
			inv.MarkPaid(now)
			if err := uc.invoiceRepo.Update(txCtx, inv); err != nil {
				return fmt.Errorf("failed to save invoice: %w", err)
			}
		}

		bsub.RecordPaymentSuccess()
		if !cmd.PeriodEnd.IsZero() {
			bsub.ApplyProviderStatus("active", cmd.PeriodEnd)
		}
		if err := uc.billingSubRepo.Update(txCtx, bsub); err != nil {
			return fmt.Errorf("failed to save billing subscription: %w", err)
		}

		return uc.renewSubject(txCtx, bsub, cmd.PeriodEnd)
	})
}

func (uc *ProcessWebhookEventUseCase) handleInvoiceFailed(ctx context.Context, cmd WebhookEventCommand) error {
	bsub, err := uc.billingSubRepo.GetByProviderSubscriptionID(ctx, cmd.ProviderSubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to look up billing subscription: %w", err)
	}
	if bsub == nil {
		uc.logger.Warnw("payment failure for unknown subscription", "provider_subscription_id", cmd.ProviderSubscriptionID, "event_id", cmd.EventID)
		return nil
	}

	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		bsub.RecordPaymentFailure()
		if err := uc.billingSubRepo.Update(txCtx, bsub); err != nil {
			return fmt.Errorf("failed to save billing subscription: %w", err)
		}

		if cmd.ProviderInvoiceID != "" {
			inv, err := uc.invoiceRepo.GetByProviderInvoiceID(txCtx, cmd.ProviderInvoiceID)
			if err != nil {
				return fmt.Errorf("failed to look up invoice: %w", err)
			}
			if inv != nil {
				inv.MarkPastDue()
				if err := uc.invoiceRepo.Update(txCtx, inv); err != nil {
					return fmt.Errorf("failed to save invoice: %w", err)
				}
			}
		}

		uc.logger.Warnw("payment failed",
			"provider_subscription_id", cmd.ProviderSubscriptionID,
			"failed_payment_count", bsub.FailedPaymentCount(),
		)
		return nil
	})
}

func (uc *ProcessWebhookEventUseCase) handleSubscriptionUpdated(ctx context.Context, cmd WebhookEventCommand) error {
	bsub, err := uc.billingSubRepo.GetByProviderSubscriptionID(ctx, cmd.ProviderSubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to look up billing subscription: %w", err)
	}
	if bsub == nil {
		uc.logger.Warnw("status update for unknown subscription", "provider_subscription_id", cmd.ProviderSubscriptionID, "event_id", cmd.EventID)
		return nil
	}

	known := bsub.ApplyProviderStatus(cmd.ProviderStatus, cmd.PeriodEnd)
	if !known {
		uc.logger.Warnw("unrecognized provider status",
			"provider_status", cmd.ProviderStatus,
			"provider_subscription_id", cmd.ProviderSubscriptionID,
		)
	}

	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.billingSubRepo.Update(txCtx, bsub); err != nil {
			return fmt.Errorf("failed to save billing subscription: %w", err)
		}

		switch bsub.Status() {
		case billing.StatusCancelled, billing.StatusEnded:
			return uc.deactivateSubject(txCtx, bsub)
		case billing.StatusActive, billing.StatusTrial:
			return uc.renewSubject(txCtx, bsub, cmd.PeriodEnd)
		default:
			// past_due and unknown keep the subject as-is until resolved.
			return nil
		}
	})
}

func (uc *ProcessWebhookEventUseCase) handleSubscriptionDeleted(ctx context.Context, cmd WebhookEventCommand) error {
	bsub, err := uc.billingSubRepo.GetByProviderSubscriptionID(ctx, cmd.ProviderSubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to look up billing subscription: %w", err)
	}
	if bsub == nil {
		uc.logger.Warnw("deletion event for unknown subscription", "provider_subscription_id", cmd.ProviderSubscriptionID, "event_id", cmd.EventID)
		return nil
	}

	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		bsub.MarkCancelled(biztime.NowUTC())
		if err := uc.billingSubRepo.Update(txCtx, bsub); err != nil {
			return fmt.Errorf("failed to save billing subscription: %w", err)
		}
		return uc.deactivateSubject(txCtx, bsub)
	})
}

// renewSubject extends the paid window of the billing subject.
func (uc *ProcessWebhookEventUseCase) renewSubject(ctx context.Context, bsub *billing.BillingSubscription, periodEnd time.Time) error {
	if periodEnd.IsZero() {
		periodEnd = bsub.CurrentPeriodEnd()
	}
	if periodEnd.IsZero() {
		return nil
	}

	if bsub.TrainerSubscriptionID() != nil {
		sub, err := uc.subscriptionRepo.GetByID(ctx, *bsub.TrainerSubscriptionID())
		if err != nil {
			return fmt.Errorf("failed to get trainer subscription %d: %w", *bsub.TrainerSubscriptionID(), err)
		}
		if sub == nil {
			return fmt.Errorf("trainer subscription %d not found", *bsub.TrainerSubscriptionID())
		}
		sub.RenewUntil(periodEnd)
		return uc.subscriptionRepo.Update(ctx, sub)
	}

	if bsub.OrganizationID() != nil {
		org, err := uc.orgRepo.GetByID(ctx, *bsub.OrganizationID())
		if err != nil {
			return fmt.Errorf("failed to get organization %d: %w", *bsub.OrganizationID(), err)
		}
		if org == nil {
			return fmt.Errorf("organization %d not found", *bsub.OrganizationID())
		}
		org.RenewUntil(periodEnd)
		return uc.orgRepo.Update(ctx, org)
	}
	return nil
}

// deactivateSubject suspends the billing subject after a provider-side
// cancellation.
func (uc *ProcessWebhookEventUseCase) deactivateSubject(ctx context.Context, bsub *billing.BillingSubscription) error {
	if bsub.TrainerSubscriptionID() != nil {
		sub, err := uc.subscriptionRepo.GetByID(ctx, *bsub.TrainerSubscriptionID())
		if err != nil {
			return fmt.Errorf("failed to get trainer subscription %d: %w", *bsub.TrainerSubscriptionID(), err)
		}
		if sub == nil {
			return fmt.Errorf("trainer subscription %d not found", *bsub.TrainerSubscriptionID())
		}
		sub.Cancel()
		return uc.subscriptionRepo.Update(ctx, sub)
	}

	if bsub.OrganizationID() != nil {
		org, err := uc.orgRepo.GetByID(ctx, *bsub.OrganizationID())
		if err != nil {
			return fmt.Errorf("failed to get organization %d: %w", *bsub.OrganizationID(), err)
		}
		if org == nil {
			return fmt.Errorf("organization %d not found", *bsub.OrganizationID())
		}
		org.Deactivate()
		return uc.orgRepo.Update(ctx, org)
	}
	return nil
}

// findTrainerSubBySID resolves a trainer subscription by its short ID.
func (uc *ProcessWebhookEventUseCase) findTrainerSubBySID(ctx context.Context, sid string) (*subscription.TrainerSubscription, error) {
	return uc.subscriptionRepo.GetBySID(ctx, sid)
}
