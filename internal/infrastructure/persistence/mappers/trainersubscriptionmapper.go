package mappers

import (
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
)

type TrainerSubscriptionMapper interface {
	ToEntity(model *models.TrainerSubscriptionModel) (*subscription.TrainerSubscription, error)
	ToModel(entity *subscription.TrainerSubscription) (*models.TrainerSubscriptionModel, error)
	ToEntities(models []*models.TrainerSubscriptionModel) ([]*subscription.TrainerSubscription, error)
}

type TrainerSubscriptionMapperImpl struct{}

func NewTrainerSubscriptionMapper() TrainerSubscriptionMapper {
	return &TrainerSubscriptionMapperImpl{}
}

func (m *TrainerSubscriptionMapperImpl) ToEntity(model *models.TrainerSubscriptionModel) (*subscription.TrainerSubscription, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := subscription.ReconstructTrainerSubscription(
		model.ID,
		model.SID,
		model.TrainerID,
		model.OrganizationID,
		model.PlanID,
		model.IsTrial,
		model.TrialStart,
		model.TrialEnd,
		model.TrialUsed,
		model.SubscriptionStart,
		model.SubscriptionEnd,
		model.IsActive,
		model.AutoRenew,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct trainer subscription entity: %w", err)
	}

	return entity, nil
}

func (m *TrainerSubscriptionMapperImpl) ToModel(entity *subscription.TrainerSubscription) (*models.TrainerSubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.TrainerSubscriptionModel{
		ID:                entity.ID(),
		SID:               entity.SID(),
		TrainerID:         entity.TrainerID(),
		OrganizationID:    entity.OrganizationID(),
		PlanID:            entity.PlanID(),
		IsTrial:           entity.IsTrial(),
		TrialStart:        entity.TrialStart(),
		TrialEnd:          entity.TrialEnd(),
		TrialUsed:         entity.TrialUsed(),
		SubscriptionStart: entity.SubscriptionStart(),
		SubscriptionEnd:   entity.SubscriptionEnd(),
		IsActive:          entity.IsActive(),
		AutoRenew:         entity.AutoRenew(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}

func (m *TrainerSubscriptionMapperImpl) ToEntities(subModels []*models.TrainerSubscriptionModel) ([]*subscription.TrainerSubscription, error) {
	entities := make([]*subscription.TrainerSubscription, 0, len(subModels))
	for _, model := range subModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
