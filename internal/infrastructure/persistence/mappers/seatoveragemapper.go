package mappers

import (
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
)

type SeatOverageMapper interface {
	ToEntity(model *models.SeatOverageModel) (*organization.SeatOverage, error)
	ToModel(entity *organization.SeatOverage) (*models.SeatOverageModel, error)
	ToEntities(models []*models.SeatOverageModel) ([]*organization.SeatOverage, error)
}

type SeatOverageMapperImpl struct{}

func NewSeatOverageMapper() SeatOverageMapper {
	return &SeatOverageMapperImpl{}
}

func (m *SeatOverageMapperImpl) ToEntity(model *models.SeatOverageModel) (*organization.SeatOverage, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := organization.ReconstructSeatOverage(
		model.ID,
		model.SID,
		model.OrganizationID,
		model.SeatsPurchased,
		model.PricePerSeat,
		model.TotalPrice,
		model.StartDate,
		model.EndDate,
		model.IsActive,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct seat overage entity: %w", err)
	}

	return entity, nil
}

func (m *SeatOverageMapperImpl) ToModel(entity *organization.SeatOverage) (*models.SeatOverageModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.SeatOverageModel{
		ID:             entity.ID(),
		SID:            entity.SID(),
		OrganizationID: entity.OrganizationID(),
		SeatsPurchased: entity.SeatsPurchased(),
		PricePerSeat:   entity.PricePerSeat(),
		TotalPrice:     entity.TotalPrice(),
		StartDate:      entity.StartDate(),
		EndDate:        entity.EndDate(),
		IsActive:       entity.IsActive(),
		CreatedAt:      entity.CreatedAt(),
	}, nil
}

func (m *SeatOverageMapperImpl) ToEntities(overageModels []*models.SeatOverageModel) ([]*organization.SeatOverage, error) {
	entities := make([]*organization.SeatOverage, 0, len(overageModels))
	for _, model := range overageModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
