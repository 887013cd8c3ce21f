package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fitmo-inc/fitmo/internal/domain/plan"
)

type mockPlanRepo struct {
	mock.Mock
}

func (m *mockPlanRepo) Create(ctx context.Context, p *plan.Plan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPlanRepo) GetByID(ctx context.Context, id uint) (*plan.Plan, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*plan.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlanRepo) GetByKey(ctx context.Context, key plan.Key) (*plan.Plan, error) {
	args := m.Called(ctx, key)
	if v := args.Get(0); v != nil {
		return v.(*plan.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlanRepo) Update(ctx context.Context, p *plan.Plan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPlanRepo) ListActive(ctx context.Context, orgPlans *bool) ([]*plan.Plan, error) {
	args := m.Called(ctx, orgPlans)
	if v := args.Get(0); v != nil {
		return v.([]*plan.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlanRepo) ExistsByKey(ctx context.Context, key plan.Key) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// memoryPlanCache is an in-process PlanCache for tests.
type memoryPlanCache struct {
	entries map[string][]PlanDTO
	sets    int
	invalidations int
}

func newMemoryPlanCache() *memoryPlanCache {
	return &memoryPlanCache{entries: make(map[string][]PlanDTO)}
}

func (c *memoryPlanCache) GetPlans(_ context.Context, key string) ([]PlanDTO, bool) {
	plans, ok := c.entries[key]
	return plans, ok
}

func (c *memoryPlanCache) SetPlans(_ context.Context, key string, plans []PlanDTO) {
	c.entries[key] = plans
	c.sets++
}

func (c *memoryPlanCache) Invalidate(_ context.Context) {
	c.entries = make(map[string][]PlanDTO)
	c.invalidations++
}
