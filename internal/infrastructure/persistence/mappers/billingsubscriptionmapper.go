package mappers

import (
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/billing"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
)

type BillingSubscriptionMapper interface {
	ToEntity(model *models.BillingSubscriptionModel) (*billing.BillingSubscription, error)
	ToModel(entity *billing.BillingSubscription) (*models.BillingSubscriptionModel, error)
}

type BillingSubscriptionMapperImpl struct{}

func NewBillingSubscriptionMapper() BillingSubscriptionMapper {
	return &BillingSubscriptionMapperImpl{}
}

func (m *BillingSubscriptionMapperImpl) ToEntity(model *models.BillingSubscriptionModel) (*billing.BillingSubscription, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := billing.ReconstructBillingSubscription(
		model.ID,
		model.SID,
		model.TrainerSubscriptionID,
		model.OrganizationID,
		model.PlanID,
		model.ProviderCustomerID,
		model.ProviderSubscriptionID,
		billing.Cycle(model.Cycle),
		billing.Status(model.Status),
		model.CurrentPeriodStart,
		model.CurrentPeriodEnd,
		model.FailedPaymentCount,
		model.CancelledAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct billing subscription entity: %w", err)
	}

	return entity, nil
}

func (m *BillingSubscriptionMapperImpl) ToModel(entity *billing.BillingSubscription) (*models.BillingSubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.BillingSubscriptionModel{
		ID:                     entity.ID(),
		SID:                    entity.SID(),
		TrainerSubscriptionID:  entity.TrainerSubscriptionID(),
		OrganizationID:         entity.OrganizationID(),
		PlanID:                 entity.PlanID(),
		ProviderCustomerID:     entity.ProviderCustomerID(),
		ProviderSubscriptionID: entity.ProviderSubscriptionID(),
		Cycle:                  string(entity.Cycle()),
		Status:                 string(entity.Status()),
		CurrentPeriodStart:     entity.CurrentPeriodStart(),
		CurrentPeriodEnd:       entity.CurrentPeriodEnd(),
		FailedPaymentCount:     entity.FailedPaymentCount(),
		CancelledAt:            entity.CancelledAt(),
		CreatedAt:              entity.CreatedAt(),
		UpdatedAt:              entity.UpdatedAt(),
	}, nil
}
