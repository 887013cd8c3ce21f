package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/mappers"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
	"github.com/fitmo-inc/fitmo/internal/shared/db"
	"github.com/fitmo-inc/fitmo/internal/shared/id"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type OrganizationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OrganizationMapper
	logger logger.Interface
}

func NewOrganizationRepository(database *gorm.DB, logger logger.Interface) organization.Repository {
	return &OrganizationRepositoryImpl{
		db:     database,
		mapper: mappers.NewOrganizationMapper(),
		logger: logger,
	}
}

func (r *OrganizationRepositoryImpl) Create(ctx context.Context, org *organization.Organization) error {
	if org.SID() == "" {
		sid, err := id.GenerateWithPrefix(id.PrefixOrganization, id.DefaultLength)
		if err != nil {
			return fmt.Errorf("failed to generate organization SID: %w", err)
		}
		org.SetSID(sid)
	}

	model, err := r.mapper.ToModel(org)
	if err != nil {
		return fmt.Errorf("failed to convert organization to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create organization", "error", err, "owner_id", org.OwnerID())
		return fmt.Errorf("failed to create organization: %w", err)
	}

	if org.ID() == 0 && model.ID > 0 {
		if err := org.SetID(model.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrganizationRepositoryImpl) GetByID(ctx context.Context, orgID uint) (*organization.Organization, error) {
	var model models.OrganizationModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *OrganizationRepositoryImpl) GetBySID(ctx context.Context, sid string) (*organization.Organization, error) {
	var model models.OrganizationModel
	err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organization by SID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *OrganizationRepositoryImpl) GetByOwnerID(ctx context.Context, ownerID uint) (*organization.Organization, error) {
	var model models.OrganizationModel
	err := db.GetTxFromContext(ctx, r.db).Where("owner_id = ?", ownerID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organization by owner: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetByIDForUpdate acquires a row lock so concurrent seat mutations
// serialize on the organization row. Callers must run inside a
// transaction for the lock to hold.
func (r *OrganizationRepositoryImpl) GetByIDForUpdate(ctx context.Context, orgID uint) (*organization.Organization, error) {
	var model models.OrganizationModel
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organization for update: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *OrganizationRepositoryImpl) Update(ctx context.Context, org *organization.Organization) error {
	model, err := r.mapper.ToModel(org)
	if err != nil {
		return fmt.Errorf("failed to convert organization to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	err = conn.Model(&models.OrganizationModel{}).
		Where("id = ?", org.ID()).
		Select("*").
		Omit("id", "created_at").
		Updates(model).Error
	if err != nil {
		r.logger.Errorw("failed to update organization", "error", err, "organization_id", org.ID())
		return fmt.Errorf("failed to update organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepositoryImpl) ExistsByOwnerID(ctx context.Context, ownerID uint) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrganizationModel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check organization existence: %w", err)
	}
	return count > 0, nil
}
