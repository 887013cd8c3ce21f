package mappers

import (
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/booking"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
)

type BookingMapper interface {
	ToEntity(model *models.BookingModel) (*booking.Booking, error)
	ToModel(entity *booking.Booking) (*models.BookingModel, error)
	ToEntities(models []*models.BookingModel) ([]*booking.Booking, error)
}

type BookingMapperImpl struct{}

func NewBookingMapper() BookingMapper {
	return &BookingMapperImpl{}
}

func (m *BookingMapperImpl) ToEntity(model *models.BookingModel) (*booking.Booking, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := booking.ReconstructBooking(
		model.ID,
		model.SID,
		model.TrainerID,
		model.Status,
		model.BookingDate,
		model.TotalPrice,
		model.CommissionRate,
		model.CommissionAmount,
		model.TrainerEarnings,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct booking entity: %w", err)
	}

	return entity, nil
}

func (m *BookingMapperImpl) ToModel(entity *booking.Booking) (*models.BookingModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.BookingModel{
		ID:               entity.ID(),
		SID:              entity.SID(),
		TrainerID:        entity.TrainerID(),
		Status:           entity.Status(),
		BookingDate:      entity.BookingDate(),
		TotalPrice:       entity.TotalPrice(),
		CommissionRate:   entity.CommissionRate(),
		CommissionAmount: entity.CommissionAmount(),
		TrainerEarnings:  entity.TrainerEarnings(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}, nil
}

func (m *BookingMapperImpl) ToEntities(bookingModels []*models.BookingModel) ([]*booking.Booking, error) {
	entities := make([]*booking.Booking, 0, len(bookingModels))
	for _, model := range bookingModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
