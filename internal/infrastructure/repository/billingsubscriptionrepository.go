package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fitmo-inc/fitmo/internal/domain/billing"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/mappers"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
	"github.com/fitmo-inc/fitmo/internal/shared/db"
	"github.com/fitmo-inc/fitmo/internal/shared/id"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type BillingSubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.BillingSubscriptionMapper
	logger logger.Interface
}

func NewBillingSubscriptionRepository(database *gorm.DB, logger logger.Interface) billing.SubscriptionRepository {
	return &BillingSubscriptionRepositoryImpl{
		db:     database,
		mapper: mappers.NewBillingSubscriptionMapper(),
		logger: logger,
	}
}

func (r *BillingSubscriptionRepositoryImpl) Create(ctx context.Context, sub *billing.BillingSubscription) error {
	if sub.SID() == "" {
		sid, err := id.GenerateWithPrefix(id.PrefixBillingSubscription, id.DefaultLength)
		if err != nil {
			return fmt.Errorf("failed to generate billing subscription SID: %w", err)
		}
		sub.SetSID(sid)
	}

	model, err := r.mapper.ToModel(sub)
	if err != nil {
		return fmt.Errorf("failed to convert billing subscription to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create billing subscription",
			"error", err,
			"provider_subscription_id", sub.ProviderSubscriptionID())
		return fmt.Errorf("failed to create billing subscription: %w", err)
	}

	if sub.ID() == 0 && model.ID > 0 {
		if err := sub.SetID(model.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *BillingSubscriptionRepositoryImpl) GetByID(ctx context.Context, subID uint) (*billing.BillingSubscription, error) {
	var model models.BillingSubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, subID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get billing subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *BillingSubscriptionRepositoryImpl) GetByProviderSubscriptionID(ctx context.Context, providerSubID string) (*billing.BillingSubscription, error) {
	var model models.BillingSubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("provider_subscription_id = ?", providerSubID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get billing subscription by provider ID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *BillingSubscriptionRepositoryImpl) GetByTrainerSubscriptionID(ctx context.Context, trainerSubID uint) (*billing.BillingSubscription, error) {
	var model models.BillingSubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("trainer_subscription_id = ?", trainerSubID).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get billing subscription by trainer subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *BillingSubscriptionRepositoryImpl) GetByOrganizationID(ctx context.Context, orgID uint) (*billing.BillingSubscription, error) {
	var model models.BillingSubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("organization_id = ?", orgID).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get billing subscription by organization: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *BillingSubscriptionRepositoryImpl) Update(ctx context.Context, sub *billing.BillingSubscription) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		return fmt.Errorf("failed to convert billing subscription to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	err = conn.Model(&models.BillingSubscriptionModel{}).
		Where("id = ?", sub.ID()).
		Select("*").
		Omit("id", "created_at").
		Updates(model).Error
	if err != nil {
		r.logger.Errorw("failed to update billing subscription", "error", err, "billing_subscription_id", sub.ID())
		return fmt.Errorf("failed to update billing subscription: %w", err)
	}
	return nil
}
