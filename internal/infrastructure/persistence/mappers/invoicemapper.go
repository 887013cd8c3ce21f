package mappers

import (
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/billing"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
)

type InvoiceMapper interface {
	ToEntity(model *models.InvoiceModel) (*billing.Invoice, error)
	ToModel(entity *billing.Invoice) (*models.InvoiceModel, error)
	ToEntities(models []*models.InvoiceModel) ([]*billing.Invoice, error)
}

type InvoiceMapperImpl struct{}

func NewInvoiceMapper() InvoiceMapper {
	return &InvoiceMapperImpl{}
}

func (m *InvoiceMapperImpl) ToEntity(model *models.InvoiceModel) (*billing.Invoice, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := billing.ReconstructInvoice(
		model.ID,
		model.SID,
		model.BillingSubscriptionID,
		model.TrainerSubscriptionID,
		model.OrganizationID,
		model.InvoiceNumber,
		model.ProviderInvoiceID,
		model.Subtotal,
		model.TaxAmount,
		model.TotalAmount,
		billing.InvoiceStatus(model.Status),
		model.IssueDate,
		model.DueDate,
		model.PaidDate,
		model.PeriodStart,
		model.PeriodEnd,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct invoice entity: %w", err)
	}

	return entity, nil
}

func (m *InvoiceMapperImpl) ToModel(entity *billing.Invoice) (*models.InvoiceModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.InvoiceModel{
		ID:                    entity.ID(),
		SID:                   entity.SID(),
		BillingSubscriptionID: entity.BillingSubscriptionID(),
		TrainerSubscriptionID: entity.TrainerSubscriptionID(),
		OrganizationID:        entity.OrganizationID(),
		InvoiceNumber:         entity.InvoiceNumber(),
		ProviderInvoiceID:     entity.ProviderInvoiceID(),
		Subtotal:              entity.Subtotal(),
		TaxAmount:             entity.TaxAmount(),
		TotalAmount:           entity.TotalAmount(),
		Status:                string(entity.Status()),
		IssueDate:             entity.IssueDate(),
		DueDate:               entity.DueDate(),
		PaidDate:              entity.PaidDate(),
		PeriodStart:           entity.PeriodStart(),
		PeriodEnd:             entity.PeriodEnd(),
		CreatedAt:             entity.CreatedAt(),
		UpdatedAt:             entity.UpdatedAt(),
	}, nil
}

func (m *InvoiceMapperImpl) ToEntities(invoiceModels []*models.InvoiceModel) ([]*billing.Invoice, error) {
	entities := make([]*billing.Invoice, 0, len(invoiceModels))
	for _, model := range invoiceModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
