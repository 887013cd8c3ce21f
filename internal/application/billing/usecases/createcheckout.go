package usecases

import (
	"context"
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/billing"
	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type CreateCheckoutCommand struct {
	TrainerID    uint
	TrainerEmail string
	PlanKey      string
	Cycle        string
	// OrganizationSID bills the trainer's organization instead of their
	// personal subscription. Only the owner may start an org checkout.
	OrganizationSID string
	SuccessURL      string
	CancelURL       string
}

// CheckoutSessionDTO is the hosted payment page the caller redirects to.
type CheckoutSessionDTO struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CreateCheckoutUseCase opens a provider checkout session for a plan. The
// local subscription state is untouched until the provider confirms via
// webhook.
type CreateCheckoutUseCase struct {
	planRepo         plan.Repository
	subscriptionRepo subscription.Repository
	orgRepo          organization.Repository
	gateway          billing.PaymentGateway
	logger           logger.Interface
}

func NewCreateCheckoutUseCase(
	planRepo plan.Repository,
	subscriptionRepo subscription.Repository,
	orgRepo organization.Repository,
	gateway billing.PaymentGateway,
	logger logger.Interface,
) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		orgRepo:          orgRepo,
		gateway:          gateway,
		logger:           logger,
	}
}

func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, cmd CreateCheckoutCommand) (*CheckoutSessionDTO, error) {
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

	cycle := billing.CycleMonthly
	amount := p.PriceMonthly()
	if cmd.Cycle == string(billing.CycleAnnual) {
		if p.PriceAnnual() <= 0 {
			return nil, apperrors.NewValidationError("plan has no annual pricing")
		}
		cycle = billing.CycleAnnual
		amount = p.PriceAnnual()
	}
	if amount <= 0 {
		return nil, apperrors.NewValidationError("free plans do not require checkout")
	}

	subjectSID, err := uc.resolveSubject(ctx, cmd, p)
	if err != nil {
		return nil, err
	}

	session, err := uc.gateway.CreateCheckoutSession(ctx, billing.CheckoutParams{
		CustomerEmail: cmd.TrainerEmail,
		SubjectSID:    subjectSID,
		PlanName:      p.Name(),
		Amount:        amount,
		Currency:      plan.Currency,
		Cycle:         cycle,
		SuccessURL:    cmd.SuccessURL,
		CancelURL:     cmd.CancelURL,
	})
	if err != nil {
		uc.logger.Errorw("failed to create checkout session", "error", err, "plan_key", cmd.PlanKey)
		return nil, apperrors.NewPaymentProviderError("failed to create checkout session")
	}

	uc.logger.Infow("checkout session created",
		"trainer_id", cmd.TrainerID,
		"plan_key", cmd.PlanKey,
		"subject_sid", subjectSID,
		"session_id", session.SessionID,
	)

	return &CheckoutSessionDTO{SessionID: session.SessionID, URL: session.URL}, nil
}

// resolveSubject determines who is being billed and returns their SID for
// the provider's client reference.
func (uc *CreateCheckoutUseCase) resolveSubject(ctx context.Context, cmd CreateCheckoutCommand, p *plan.Plan) (string, error) {
	if cmd.OrganizationSID != "" {
		if !p.IsOrgPlan() {
			return "", apperrors.NewValidationError("plan is not an organization plan")
		}
		org, err := uc.orgRepo.GetBySID(ctx, cmd.OrganizationSID)
		if err != nil {
			return "", fmt.Errorf("failed to get organization: %w", err)
		}
		if org == nil {
			return "", apperrors.NewNotFoundError("organization not found")
		}
		if org.OwnerID() != cmd.TrainerID {
			return "", apperrors.NewForbiddenError("only the organization owner can start an organization checkout")
		}
		return org.SID(), nil
	}

	if p.IsOrgPlan() {
		return "", apperrors.NewValidationError("organization plans require an organization")
	}

	sub, _, err := uc.subscriptionRepo.GetOrCreateByTrainerID(ctx, cmd.TrainerID)
	if err != nil {
		return "", fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub.OrganizationID() != nil {
		return "", apperrors.NewConflictError("trainer is covered by an organization plan")
	}
	return sub.SID(), nil
}
