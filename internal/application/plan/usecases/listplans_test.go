package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

func boolPtr(v bool) *bool { return &v }

func catalogPlan(t *testing.T, id uint, key plan.Key, isOrg bool) *plan.Plan {
	t.Helper()
	p, err := plan.ReconstructPlan(
		id, "plan_"+string(key), key, string(key), "",
		9900, 99000,
		isOrg, 10, 6000,
		15, 14,
		true, true,
		[]string{"booking_calendar"},
		time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return p
}

func TestListPlans_MissesCacheThenPopulatesIt(t *testing.T) {
	planRepo := new(mockPlanRepo)
	cache := newMemoryPlanCache()
	uc := NewListPlansUseCase(planRepo, cache, logger.NewLogger())

	planRepo.On("ListActive", mock.Anything, (*bool)(nil)).Return([]*plan.Plan{
		catalogPlan(t, 1, plan.KeyBasic, false),
		catalogPlan(t, 3, plan.KeyClub, true),
	}, nil).Once()

	first, err := uc.Execute(context.Background(), ListPlansCommand{})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "basic", first[0].Key)
	assert.Equal(t, "MAD", first[0].Currency)
	assert.Equal(t, 1, cache.sets)

	// The second call is served from the cache; the repo is not hit again.
	second, err := uc.Execute(context.Background(), ListPlansCommand{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	planRepo.AssertNumberOfCalls(t, "ListActive", 1)
}

func TestListPlans_FilterKeysAreCachedSeparately(t *testing.T) {
	planRepo := new(mockPlanRepo)
	cache := newMemoryPlanCache()
	uc := NewListPlansUseCase(planRepo, cache, logger.NewLogger())

	orgOnly := boolPtr(true)
	trainerOnly := boolPtr(false)

	planRepo.On("ListActive", mock.Anything, orgOnly).Return([]*plan.Plan{
		catalogPlan(t, 3, plan.KeyClub, true),
	}, nil).Once()
	planRepo.On("ListActive", mock.Anything, trainerOnly).Return([]*plan.Plan{
		catalogPlan(t, 1, plan.KeyBasic, false),
	}, nil).Once()

	orgPlans, err := uc.Execute(context.Background(), ListPlansCommand{OrgPlans: orgOnly})
	require.NoError(t, err)
	require.Len(t, orgPlans, 1)
	assert.True(t, orgPlans[0].IsOrgPlan)

	trainerPlans, err := uc.Execute(context.Background(), ListPlansCommand{OrgPlans: trainerOnly})
	require.NoError(t, err)
	require.Len(t, trainerPlans, 1)
	assert.False(t, trainerPlans[0].IsOrgPlan)

	assert.Equal(t, 2, cache.sets)
}

func TestListPlans_NilCache(t *testing.T) {
	planRepo := new(mockPlanRepo)
	uc := NewListPlansUseCase(planRepo, nil, logger.NewLogger())

	planRepo.On("ListActive", mock.Anything, (*bool)(nil)).Return([]*plan.Plan{
		catalogPlan(t, 1, plan.KeyBasic, false),
	}, nil)

	plans, err := uc.Execute(context.Background(), ListPlansCommand{})
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}

func TestSeedPlans_CreatesMissingAndSkipsExisting(t *testing.T) {
	planRepo := new(mockPlanRepo)
	cache := newMemoryPlanCache()
	uc := NewSeedPlansUseCase(planRepo, cache, logger.NewLogger())

	planRepo.On("ExistsByKey", mock.Anything, plan.KeyBasic).Return(true, nil)
	planRepo.On("ExistsByKey", mock.Anything, plan.KeyPremium).Return(false, nil)
	planRepo.On("ExistsByKey", mock.Anything, plan.KeyClub).Return(false, nil)
	planRepo.On("ExistsByKey", mock.Anything, plan.KeyGoldClub).Return(true, nil)
	planRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *plan.Plan) bool {
		return p.Key() == plan.KeyPremium && !p.IsOrgPlan()
	})).Return(nil)
	planRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *plan.Plan) bool {
		return p.Key() == plan.KeyClub && p.IsOrgPlan() && p.IncludedSeats() == 10
	})).Return(nil)

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"premium", "club"}, result.Created)
	assert.Equal(t, []string{"basic", "gold_club"}, result.Skipped)
	assert.Equal(t, 1, cache.invalidations)
	planRepo.AssertExpectations(t)
}

func TestSeedPlans_NothingToDoLeavesCacheAlone(t *testing.T) {
	planRepo := new(mockPlanRepo)
	cache := newMemoryPlanCache()
	uc := NewSeedPlansUseCase(planRepo, cache, logger.NewLogger())

	planRepo.On("ExistsByKey", mock.Anything, mock.Anything).Return(true, nil)

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Len(t, result.Skipped, 4)
	assert.Equal(t, 0, cache.invalidations)
}
