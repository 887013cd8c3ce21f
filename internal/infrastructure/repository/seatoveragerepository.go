package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/mappers"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
	"github.com/fitmo-inc/fitmo/internal/shared/db"
	"github.com/fitmo-inc/fitmo/internal/shared/id"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type SeatOverageRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SeatOverageMapper
	logger logger.Interface
}

func NewSeatOverageRepository(database *gorm.DB, logger logger.Interface) organization.SeatOverageRepository {
	return &SeatOverageRepositoryImpl{
		db:     database,
		mapper: mappers.NewSeatOverageMapper(),
		logger: logger,
	}
}

func (r *SeatOverageRepositoryImpl) Create(ctx context.Context, overage *organization.SeatOverage) error {
	if overage.SID() == "" {
		sid, err := id.GenerateWithPrefix(id.PrefixSeatOverage, id.DefaultLength)
		if err != nil {
			return fmt.Errorf("failed to generate seat overage SID: %w", err)
		}
		overage.SetSID(sid)
	}

	model, err := r.mapper.ToModel(overage)
	if err != nil {
		return fmt.Errorf("failed to convert seat overage to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create seat overage",
			"error", err,
			"organization_id", overage.OrganizationID())
		return fmt.Errorf("failed to create seat overage: %w", err)
	}

	if overage.ID() == 0 && model.ID > 0 {
		if err := overage.SetID(model.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *SeatOverageRepositoryImpl) ListActiveByOrganizationID(ctx context.Context, orgID uint) ([]*organization.SeatOverage, error) {
	var overageModels []*models.SeatOverageModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("organization_id = ? AND is_active = ? AND end_date > ?", orgID, true, time.Now()).
		Order("created_at ASC").
		Find(&overageModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active seat overages: %w", err)
	}
	return r.mapper.ToEntities(overageModels)
}
