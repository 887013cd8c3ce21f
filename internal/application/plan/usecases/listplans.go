package usecases

import (
	"context"
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

// PlanDTO is the API view of a subscription plan. Prices are in minor
// currency units.
type PlanDTO struct {
	SID                 string   `json:"id"`
	Key                 string   `json:"key"`
	Name                string   `json:"name"`
	Description         string   `json:"description,omitempty"`
	PriceMonthly        int64    `json:"price_monthly"`
	PriceAnnual         int64    `json:"price_annual,omitempty"`
	Currency            string   `json:"currency"`
	IsOrgPlan           bool     `json:"is_org_plan"`
	IncludedSeats       int      `json:"included_seats,omitempty"`
	OveragePricePerSeat int64    `json:"overage_price_per_seat,omitempty"`
	CommissionRate      int      `json:"commission_rate"`
	TrialDays           int      `json:"trial_days,omitempty"`
	IsTrialAvailable    bool     `json:"is_trial_available"`
	Features            []string `json:"features,omitempty"`
}

// PlanCache caches the public plan catalog. Implementations may be a no-op.
type PlanCache interface {
	GetPlans(ctx context.Context, key string) ([]PlanDTO, bool)
	SetPlans(ctx context.Context, key string, plans []PlanDTO)
	Invalidate(ctx context.Context)
}

type ListPlansCommand struct {
	// OrgPlans filters by plan audience when non-nil: true returns only
	// organization plans, false only individual trainer plans.
	OrgPlans *bool
}

type ListPlansUseCase struct {
	planRepo plan.Repository
	cache    PlanCache
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo plan.Repository, cache PlanCache, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		cache:    cache,
		logger:   logger,
	}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, cmd ListPlansCommand) ([]PlanDTO, error) {
	cacheKey := cacheKeyFor(cmd.OrgPlans)
	if uc.cache != nil {
		if cached, ok := uc.cache.GetPlans(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	plans, err := uc.planRepo.ListActive(ctx, cmd.OrgPlans)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	dtos := make([]PlanDTO, 0, len(plans))
	for _, p := range plans {
		dtos = append(dtos, ToPlanDTO(p))
	}

	if uc.cache != nil {
		uc.cache.SetPlans(ctx, cacheKey, dtos)
	}

	return dtos, nil
}

func cacheKeyFor(orgPlans *bool) string {
	switch {
	case orgPlans == nil:
		return "plans:all"
	case *orgPlans:
		return "plans:org"
	default:
		return "plans:trainer"
	}
}

// ToPlanDTO maps a plan aggregate to its API representation.
func ToPlanDTO(p *plan.Plan) PlanDTO {
	return PlanDTO{
		SID:                 p.SID(),
		Key:                 string(p.Key()),
		Name:                p.Name(),
		Description:         p.Description(),
		PriceMonthly:        p.PriceMonthly(),
		PriceAnnual:         p.PriceAnnual(),
		Currency:            plan.Currency,
		IsOrgPlan:           p.IsOrgPlan(),
		IncludedSeats:       p.IncludedSeats(),
		OveragePricePerSeat: p.OveragePricePerSeat(),
		CommissionRate:      p.CommissionRate(),
		TrialDays:           p.TrialDays(),
		IsTrialAvailable:    p.IsTrialAvailable(),
		Features:            p.Features(),
	}
}
