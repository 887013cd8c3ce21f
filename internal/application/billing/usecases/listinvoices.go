package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/fitmo-inc/fitmo/internal/domain/billing"
	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

// InvoiceDTO is the API view of a ledger invoice. Amounts are in minor
// currency units.
type InvoiceDTO struct {
	SID           string     `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	Status        string     `json:"status"`
	Subtotal      int64      `json:"subtotal"`
	TaxAmount     int64      `json:"tax_amount"`
	TotalAmount   int64      `json:"total_amount"`
	Currency      string     `json:"currency"`
	IssueDate     time.Time  `json:"issue_date"`
	DueDate       time.Time  `json:"due_date"`
	PaidDate      *time.Time `json:"paid_date,omitempty"`
	PeriodStart   time.Time  `json:"period_start"`
	PeriodEnd     time.Time  `json:"period_end"`
}

func toInvoiceDTO(inv *billing.Invoice) InvoiceDTO {
	return InvoiceDTO{
		SID:           inv.SID(),
		InvoiceNumber: inv.InvoiceNumber(),
		Status:        string(inv.Status()),
		Subtotal:      inv.Subtotal(),
		TaxAmount:     inv.TaxAmount(),
		TotalAmount:   inv.TotalAmount(),
		Currency:      plan.Currency,
		IssueDate:     inv.IssueDate(),
		DueDate:       inv.DueDate(),
		PaidDate:      inv.PaidDate(),
		PeriodStart:   inv.PeriodStart(),
		PeriodEnd:     inv.PeriodEnd(),
	}
}

type ListMyInvoicesCommand struct {
	TrainerID uint
}

// ListMyInvoicesUseCase lists the invoices a trainer can see: their personal
// subscription's invoices, plus the organization's if they own one.
type ListMyInvoicesUseCase struct {
	invoiceRepo      billing.InvoiceRepository
	subscriptionRepo subscription.Repository
	orgRepo          organization.Repository
	logger           logger.Interface
}

func NewListMyInvoicesUseCase(
	invoiceRepo billing.InvoiceRepository,
	subscriptionRepo subscription.Repository,
	orgRepo organization.Repository,
	logger logger.Interface,
) *ListMyInvoicesUseCase {
	return &ListMyInvoicesUseCase{
		invoiceRepo:      invoiceRepo,
		subscriptionRepo: subscriptionRepo,
		orgRepo:          orgRepo,
		logger:           logger,
	}
}

func (uc *ListMyInvoicesUseCase) Execute(ctx context.Context, cmd ListMyInvoicesCommand) ([]InvoiceDTO, error) {
	dtos := make([]InvoiceDTO, 0)

	sub, err := uc.subscriptionRepo.GetByTrainerID(ctx, cmd.TrainerID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "trainer_id", cmd.TrainerID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub != nil {
		invoices, err := uc.invoiceRepo.ListByTrainerSubscriptionID(ctx, sub.ID())
		if err != nil {
			uc.logger.Errorw("failed to list invoices", "error", err, "subscription_id", sub.ID())
			return nil, fmt.Errorf("failed to list invoices: %w", err)
		}
		for _, inv := range invoices {
			dtos = append(dtos, toInvoiceDTO(inv))
		}
	}

	org, err := uc.orgRepo.GetByOwnerID(ctx, cmd.TrainerID)
	if err != nil {
		uc.logger.Errorw("failed to get organization", "error", err, "owner_id", cmd.TrainerID)
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org != nil {
		invoices, err := uc.invoiceRepo.ListByOrganizationID(ctx, org.ID())
		if err != nil {
			uc.logger.Errorw("failed to list organization invoices", "error", err, "organization_id", org.ID())
			return nil, fmt.Errorf("failed to list organization invoices: %w", err)
		}
		for _, inv := range invoices {
			dtos = append(dtos, toInvoiceDTO(inv))
		}
	}

	return dtos, nil
}

type GetInvoiceCommand struct {
	TrainerID  uint
	InvoiceSID string
}

// GetInvoiceUseCase fetches a single invoice, restricted to its subject's
// trainer or organization owner.
type GetInvoiceUseCase struct {
	invoiceRepo      billing.InvoiceRepository
	subscriptionRepo subscription.Repository
	orgRepo          organization.Repository
	logger           logger.Interface
}

func NewGetInvoiceUseCase(
	invoiceRepo billing.InvoiceRepository,
	subscriptionRepo subscription.Repository,
	orgRepo organization.Repository,
	logger logger.Interface,
) *GetInvoiceUseCase {
	return &GetInvoiceUseCase{
		invoiceRepo:      invoiceRepo,
		subscriptionRepo: subscriptionRepo,
		orgRepo:          orgRepo,
		logger:           logger,
	}
}

func (uc *GetInvoiceUseCase) Execute(ctx context.Context, cmd GetInvoiceCommand) (*InvoiceDTO, error) {
	inv, err := uc.invoiceRepo.GetBySID(ctx, cmd.InvoiceSID)
	if err != nil {
		uc.logger.Errorw("failed to get invoice", "error", err, "invoice_sid", cmd.InvoiceSID)
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if inv == nil {
		return nil, apperrors.NewNotFoundError("invoice not found")
	}

	allowed, err := uc.canView(ctx, inv, cmd.TrainerID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.NewForbiddenError("invoice belongs to another account")
	}

	dto := toInvoiceDTO(inv)
	return &dto, nil
}

func (uc *GetInvoiceUseCase) canView(ctx context.Context, inv *billing.Invoice, trainerID uint) (bool, error) {
	if inv.TrainerSubscriptionID() != nil {
		sub, err := uc.subscriptionRepo.GetByID(ctx, *inv.TrainerSubscriptionID())
		if err != nil {
			return false, fmt.Errorf("failed to get subscription: %w", err)
		}
		if sub != nil && sub.TrainerID() == trainerID {
			return true, nil
		}
	}
	if inv.OrganizationID() != nil {
		org, err := uc.orgRepo.GetByID(ctx, *inv.OrganizationID())
		if err != nil {
			return false, fmt.Errorf("failed to get organization: %w", err)
		}
		if org != nil && org.OwnerID() == trainerID {
			return true, nil
		}
	}
	return false, nil
}
