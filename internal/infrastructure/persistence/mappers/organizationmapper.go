package mappers

import (
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
)

type OrganizationMapper interface {
	ToEntity(model *models.OrganizationModel) (*organization.Organization, error)
	ToModel(entity *organization.Organization) (*models.OrganizationModel, error)
}

type OrganizationMapperImpl struct{}

func NewOrganizationMapper() OrganizationMapper {
	return &OrganizationMapperImpl{}
}

func (m *OrganizationMapperImpl) ToEntity(model *models.OrganizationModel) (*organization.Organization, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := organization.ReconstructOrganization(
		model.ID,
		model.SID,
		model.Name,
		model.Email,
		model.OwnerID,
		model.PlanID,
		model.SeatsUsed,
		model.ExtraSeatsPurchased,
		model.IsTrial,
		model.TrialStart,
		model.TrialEnd,
		model.SubscriptionStart,
		model.SubscriptionEnd,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct organization entity: %w", err)
	}

	return entity, nil
}

func (m *OrganizationMapperImpl) ToModel(entity *organization.Organization) (*models.OrganizationModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.OrganizationModel{
		ID:                  entity.ID(),
		SID:                 entity.SID(),
		Name:                entity.Name(),
		Email:               entity.Email(),
		OwnerID:             entity.OwnerID(),
		PlanID:              entity.PlanID(),
		SeatsUsed:           entity.SeatsUsed(),
		ExtraSeatsPurchased: entity.ExtraSeatsPurchased(),
		IsTrial:             entity.IsTrial(),
		TrialStart:          entity.TrialStart(),
		TrialEnd:            entity.TrialEnd(),
		SubscriptionStart:   entity.SubscriptionStart(),
		SubscriptionEnd:     entity.SubscriptionEnd(),
		IsActive:            entity.IsActive(),
		CreatedAt:           entity.CreatedAt(),
		UpdatedAt:           entity.UpdatedAt(),
	}, nil
}
