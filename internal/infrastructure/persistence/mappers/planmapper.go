package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
)

type PlanMapper interface {
	ToEntity(model *models.PlanModel) (*plan.Plan, error)
	ToModel(entity *plan.Plan) (*models.PlanModel, error)
	ToEntities(models []*models.PlanModel) ([]*plan.Plan, error)
}

type PlanMapperImpl struct{}

func NewPlanMapper() PlanMapper {
	return &PlanMapperImpl{}
}

func (m *PlanMapperImpl) ToEntity(model *models.PlanModel) (*plan.Plan, error) {
	if model == nil {
		return nil, nil
	}

	var features []string
	if model.Features != nil {
		if err := json.Unmarshal(model.Features, &features); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan features: %w", err)
		}
	}

	entity, err := plan.ReconstructPlan(
		model.ID,
		model.SID,
		plan.Key(model.Key),
		model.Name,
		model.Description,
		model.PriceMonthly,
		model.PriceAnnual,
		model.IsOrgPlan,
		model.IncludedSeats,
		model.OveragePricePerSeat,
		model.CommissionRate,
		model.TrialDays,
		model.IsTrialAvailable,
		model.IsActive,
		features,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan entity: %w", err)
	}

	return entity, nil
}

func (m *PlanMapperImpl) ToModel(entity *plan.Plan) (*models.PlanModel, error) {
	if entity == nil {
		return nil, nil
	}

	features, err := json.Marshal(entity.Features())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan features: %w", err)
	}

	return &models.PlanModel{
		ID:                  entity.ID(),
		SID:                 entity.SID(),
		Key:                 string(entity.Key()),
		Name:                entity.Name(),
		Description:         entity.Description(),
		PriceMonthly:        entity.PriceMonthly(),
		PriceAnnual:         entity.PriceAnnual(),
		IsOrgPlan:           entity.IsOrgPlan(),
		IncludedSeats:       entity.IncludedSeats(),
		OveragePricePerSeat: entity.OveragePricePerSeat(),
		CommissionRate:      entity.CommissionRate(),
		TrialDays:           entity.TrialDays(),
		IsTrialAvailable:    entity.IsTrialAvailable(),
		IsActive:            entity.IsActive(),
		Features:            datatypes.JSON(features),
		CreatedAt:           entity.CreatedAt(),
		UpdatedAt:           entity.UpdatedAt(),
	}, nil
}

func (m *PlanMapperImpl) ToEntities(planModels []*models.PlanModel) ([]*plan.Plan, error) {
	entities := make([]*plan.Plan, 0, len(planModels))
	for _, model := range planModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
