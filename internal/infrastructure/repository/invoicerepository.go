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

type InvoiceRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.InvoiceMapper
	logger logger.Interface
}

func NewInvoiceRepository(database *gorm.DB, logger logger.Interface) billing.InvoiceRepository {
	return &InvoiceRepositoryImpl{
		db:     database,
		mapper: mappers.NewInvoiceMapper(),
		logger: logger,
	}
}

func (r *InvoiceRepositoryImpl) Create(ctx context.Context, inv *billing.Invoice) error {
	if inv.SID() == "" {
		sid, err := id.GenerateWithPrefix(id.PrefixInvoice, id.DefaultLength)
		if err != nil {
			return fmt.Errorf("failed to generate invoice SID: %w", err)
		}
		inv.SetSID(sid)
	}

	model, err := r.mapper.ToModel(inv)
	if err != nil {
		return fmt.Errorf("failed to convert invoice to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create invoice", "error", err, "invoice_number", inv.InvoiceNumber())
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	if inv.ID() == 0 && model.ID > 0 {
		if err := inv.SetID(model.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *InvoiceRepositoryImpl) GetByID(ctx context.Context, invoiceID uint) (*billing.Invoice, error) {
	var model models.InvoiceModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, invoiceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *InvoiceRepositoryImpl) GetBySID(ctx context.Context, sid string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invoice by SID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *InvoiceRepositoryImpl) GetByProviderInvoiceID(ctx context.Context, providerInvoiceID string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("provider_invoice_id = ?", providerInvoiceID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invoice by provider ID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *InvoiceRepositoryImpl) Update(ctx context.Context, inv *billing.Invoice) error {
	model, err := r.mapper.ToModel(inv)
	if err != nil {
		return fmt.Errorf("failed to convert invoice to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	err = conn.Model(&models.InvoiceModel{}).
		Where("id = ?", inv.ID()).
		Select("*").
		Omit("id", "created_at").
		Updates(model).Error
	if err != nil {
		r.logger.Errorw("failed to update invoice", "error", err, "invoice_id", inv.ID())
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepositoryImpl) ListByTrainerSubscriptionID(ctx context.Context, trainerSubID uint) ([]*billing.Invoice, error) {
	var invoiceModels []*models.InvoiceModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("trainer_subscription_id = ?", trainerSubID).
		Order("issue_date DESC").
		Find(&invoiceModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices by trainer subscription: %w", err)
	}
	return r.mapper.ToEntities(invoiceModels)
}

func (r *InvoiceRepositoryImpl) ListByOrganizationID(ctx context.Context, orgID uint) ([]*billing.Invoice, error) {
	var invoiceModels []*models.InvoiceModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("organization_id = ?", orgID).
		Order("issue_date DESC").
		Find(&invoiceModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices by organization: %w", err)
	}
	return r.mapper.ToEntities(invoiceModels)
}
