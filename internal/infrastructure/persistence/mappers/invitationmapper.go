package mappers

import (
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
)

type InvitationMapper interface {
	ToEntity(model *models.InvitationModel) (*organization.Invitation, error)
	ToModel(entity *organization.Invitation) (*models.InvitationModel, error)
	ToEntities(models []*models.InvitationModel) ([]*organization.Invitation, error)
}

type InvitationMapperImpl struct{}

func NewInvitationMapper() InvitationMapper {
	return &InvitationMapperImpl{}
}

func (m *InvitationMapperImpl) ToEntity(model *models.InvitationModel) (*organization.Invitation, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := organization.ReconstructInvitation(
		model.ID,
		model.SID,
		model.OrganizationID,
		model.Email,
		model.Token,
		model.InvitedByID,
		model.Accepted,
		model.AcceptedByID,
		model.AcceptedAt,
		model.ExpiresAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct invitation entity: %w", err)
	}

	return entity, nil
}

func (m *InvitationMapperImpl) ToModel(entity *organization.Invitation) (*models.InvitationModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.InvitationModel{
		ID:             entity.ID(),
		SID:            entity.SID(),
		OrganizationID: entity.OrganizationID(),
		Email:          entity.Email(),
		Token:          entity.Token(),
		InvitedByID:    entity.InvitedByID(),
		Accepted:       entity.Accepted(),
		AcceptedByID:   entity.AcceptedByID(),
		AcceptedAt:     entity.AcceptedAt(),
		ExpiresAt:      entity.ExpiresAt(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

func (m *InvitationMapperImpl) ToEntities(invModels []*models.InvitationModel) ([]*organization.Invitation, error) {
	entities := make([]*organization.Invitation, 0, len(invModels))
	for _, model := range invModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
