package usecases

import (
	"context"
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type seedDefinition struct {
	key                 plan.Key
	name                string
	description         string
	priceMonthly        int64
	priceAnnual         int64
	commissionRate      int
	trialDays           int
	isOrgPlan           bool
	includedSeats       int
	overagePricePerSeat int64
	features            []string
}

// catalogSeeds is the built-in plan catalog. Prices are MAD centimes.
var catalogSeeds = []seedDefinition{
	{
		key:            plan.KeyBasic,
		name:           "Basic",
		description:    "Free plan for individual trainers getting started",
		priceMonthly:   0,
		commissionRate: 20,
		trialDays:      14,
		features:       []string{"booking_calendar", "client_messaging"},
	},
	{
		key:            plan.KeyPremium,
		name:           "Premium",
		description:    "Full toolkit for established independent trainers",
		priceMonthly:   9900,
		priceAnnual:    99000,
		commissionRate: 15,
		trialDays:      14,
		features:       []string{"booking_calendar", "client_messaging", "program_builder", "priority_support"},
	},
	{
		key:                 plan.KeyClub,
		name:                "Club",
		description:         "Team plan for clubs and small studios",
		priceMonthly:        50000,
		priceAnnual:         500000,
		commissionRate:      15,
		trialDays:           14,
		isOrgPlan:           true,
		includedSeats:       10,
		overagePricePerSeat: 6000,
		features:            []string{"booking_calendar", "client_messaging", "program_builder", "team_roster"},
	},
	{
		key:                 plan.KeyGoldClub,
		name:                "Gold Club",
		description:         "High-volume plan for large clubs and gym chains",
		priceMonthly:        120000,
		priceAnnual:         1200000,
		commissionRate:      12,
		trialDays:           14,
		isOrgPlan:           true,
		includedSeats:       50,
		overagePricePerSeat: 4000,
		features:            []string{"booking_calendar", "client_messaging", "program_builder", "team_roster", "dedicated_support"},
	},
}

type SeedPlansResult struct {
	Created []string
	Skipped []string
}

// SeedPlansUseCase inserts the built-in plan catalog. Existing keys are
// skipped so the command is safe to re-run.
type SeedPlansUseCase struct {
	planRepo plan.Repository
	cache    PlanCache
	logger   logger.Interface
}

func NewSeedPlansUseCase(planRepo plan.Repository, cache PlanCache, logger logger.Interface) *SeedPlansUseCase {
	return &SeedPlansUseCase{
		planRepo: planRepo,
		cache:    cache,
		logger:   logger,
	}
}

func (uc *SeedPlansUseCase) Execute(ctx context.Context) (*SeedPlansResult, error) {
	result := &SeedPlansResult{}

	for _, seed := range catalogSeeds {
		exists, err := uc.planRepo.ExistsByKey(ctx, seed.key)
		if err != nil {
			uc.logger.Errorw("failed to check plan existence", "error", err, "plan_key", seed.key)
			return nil, fmt.Errorf("failed to check plan %s: %w", seed.key, err)
		}
		if exists {
			result.Skipped = append(result.Skipped, string(seed.key))
			continue
		}

		p, err := plan.NewPlan(seed.key, seed.name, seed.description, seed.priceMonthly, seed.priceAnnual, seed.commissionRate, seed.trialDays)
		if err != nil {
			return nil, fmt.Errorf("failed to build plan %s: %w", seed.key, err)
		}
		if seed.isOrgPlan {
			if err := p.MarkAsOrgPlan(seed.includedSeats, seed.overagePricePerSeat); err != nil {
				return nil, fmt.Errorf("failed to configure org plan %s: %w", seed.key, err)
			}
		}
		p.SetFeatures(seed.features)

		if err := uc.planRepo.Create(ctx, p); err != nil {
			uc.logger.Errorw("failed to create plan", "error", err, "plan_key", seed.key)
			return nil, fmt.Errorf("failed to create plan %s: %w", seed.key, err)
		}

		uc.logger.Infow("seeded plan", "plan_key", seed.key, "plan_sid", p.SID())
		result.Created = append(result.Created, string(seed.key))
	}

	if uc.cache != nil && len(result.Created) > 0 {
		uc.cache.Invalidate(ctx)
	}

	return result, nil
}
