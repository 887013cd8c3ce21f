package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/mappers"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
	"github.com/fitmo-inc/fitmo/internal/shared/db"
	"github.com/fitmo-inc/fitmo/internal/shared/id"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PlanMapper
	logger logger.Interface
}

func NewPlanRepository(database *gorm.DB, logger logger.Interface) plan.Repository {
	return &PlanRepositoryImpl{
		db:     database,
		mapper: mappers.NewPlanMapper(),
		logger: logger,
	}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, p *plan.Plan) error {
	if p.SID() == "" {
		sid, err := id.GenerateWithPrefix(id.PrefixPlan, id.DefaultLength)
		if err != nil {
			return fmt.Errorf("failed to generate plan SID: %w", err)
		}
		p.SetSID(sid)
	}

	model, err := r.mapper.ToModel(p)
	if err != nil {
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan", "error", err, "plan_key", p.Key())
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if p.ID() == 0 && model.ID > 0 {
		if err := p.SetID(model.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, planID uint) (*plan.Plan, error) {
	var model models.PlanModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, planID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *PlanRepositoryImpl) GetByKey(ctx context.Context, key plan.Key) (*plan.Plan, error) {
	var model models.PlanModel
	err := db.GetTxFromContext(ctx, r.db).Where("`key` = ?", string(key)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan by key: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *PlanRepositoryImpl) Update(ctx context.Context, p *plan.Plan) error {
	model, err := r.mapper.ToModel(p)
	if err != nil {
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	err = conn.Model(&models.PlanModel{}).
		Where("id = ?", p.ID()).
		Select("*").
		Omit("id", "created_at").
		Updates(model).Error
	if err != nil {
		r.logger.Errorw("failed to update plan", "error", err, "plan_id", p.ID())
		return fmt.Errorf("failed to update plan: %w", err)
	}
	return nil
}

func (r *PlanRepositoryImpl) ListActive(ctx context.Context, orgPlans *bool) ([]*plan.Plan, error) {
	query := db.GetTxFromContext(ctx, r.db).Where("is_active = ?", true)
	if orgPlans != nil {
		query = query.Where("is_org_plan = ?", *orgPlans)
	}

	var planModels []*models.PlanModel
	if err := query.Order("price_monthly ASC").Find(&planModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return r.mapper.ToEntities(planModels)
}

func (r *PlanRepositoryImpl) ExistsByKey(ctx context.Context, key plan.Key) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PlanModel{}).
		Where("`key` = ?", string(key)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check plan existence: %w", err)
	}
	return count > 0, nil
}
