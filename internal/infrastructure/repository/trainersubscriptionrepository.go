package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/mappers"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
	"github.com/fitmo-inc/fitmo/internal/shared/db"
	"github.com/fitmo-inc/fitmo/internal/shared/id"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type TrainerSubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TrainerSubscriptionMapper
	logger logger.Interface
}

func NewTrainerSubscriptionRepository(database *gorm.DB, logger logger.Interface) subscription.Repository {
	return &TrainerSubscriptionRepositoryImpl{
		db:     database,
		mapper: mappers.NewTrainerSubscriptionMapper(),
		logger: logger,
	}
}

func (r *TrainerSubscriptionRepositoryImpl) Create(ctx context.Context, sub *subscription.TrainerSubscription) error {
	if sub.SID() == "" {
		sid, err := id.GenerateWithPrefix(id.PrefixSubscription, id.DefaultLength)
		if err != nil {
			return fmt.Errorf("failed to generate subscription SID: %w", err)
		}
		sub.SetSID(sid)
	}

	model, err := r.mapper.ToModel(sub)
	if err != nil {
		return fmt.Errorf("failed to convert subscription to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription", "error", err, "trainer_id", sub.TrainerID())
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if sub.ID() == 0 && model.ID > 0 {
		if err := sub.SetID(model.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *TrainerSubscriptionRepositoryImpl) GetByID(ctx context.Context, subID uint) (*subscription.TrainerSubscription, error) {
	var model models.TrainerSubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, subID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *TrainerSubscriptionRepositoryImpl) GetBySID(ctx context.Context, sid string) (*subscription.TrainerSubscription, error) {
	var model models.TrainerSubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription by SID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *TrainerSubscriptionRepositoryImpl) GetByTrainerID(ctx context.Context, trainerID uint) (*subscription.TrainerSubscription, error) {
	var model models.TrainerSubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).Where("trainer_id = ?", trainerID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription by trainer: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *TrainerSubscriptionRepositoryImpl) GetByOrganizationID(ctx context.Context, orgID uint) ([]*subscription.TrainerSubscription, error) {
	var subModels []*models.TrainerSubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("organization_id = ?", orgID).
		Order("id ASC").
		Find(&subModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions by organization: %w", err)
	}
	return r.mapper.ToEntities(subModels)
}

func (r *TrainerSubscriptionRepositoryImpl) Update(ctx context.Context, sub *subscription.TrainerSubscription) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		return fmt.Errorf("failed to convert subscription to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	err = conn.Model(&models.TrainerSubscriptionModel{}).
		Where("id = ?", sub.ID()).
		Select("*").
		Omit("id", "created_at").
		Updates(model).Error
	if err != nil {
		r.logger.Errorw("failed to update subscription", "error", err, "subscription_id", sub.ID())
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}

func (r *TrainerSubscriptionRepositoryImpl) GetOrCreateByTrainerID(ctx context.Context, trainerID uint) (*subscription.TrainerSubscription, bool, error) {
	sub, err := r.GetByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, false, err
	}
	if sub != nil {
		return sub, false, nil
	}

	sub, err = subscription.NewTrainerSubscription(trainerID)
	if err != nil {
		return nil, false, err
	}
	if err := r.Create(ctx, sub); err != nil {
		return nil, false, err
	}
	return sub, true, nil
}
