package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fitmo-inc/fitmo/internal/domain/booking"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id uint) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*booking.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) GetBySID(ctx context.Context, sid string) (*booking.Booking, error) {
	args := m.Called(ctx, sid)
	if v := args.Get(0); v != nil {
		return v.(*booking.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) Update(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookingRepo) ListCompletedByTrainer(ctx context.Context, trainerID uint, start, end *time.Time) ([]*booking.Booking, error) {
	args := m.Called(ctx, trainerID, start, end)
	if v := args.Get(0); v != nil {
		return v.([]*booking.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) SummarizeEarnings(ctx context.Context, trainerID uint, start, end *time.Time) (*booking.EarningsSummary, error) {
	args := m.Called(ctx, trainerID, start, end)
	if v := args.Get(0); v != nil {
		return v.(*booking.EarningsSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSubscriptionRepo struct {
	mock.Mock
}

func (m *mockSubscriptionRepo) Create(ctx context.Context, sub *subscription.TrainerSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockSubscriptionRepo) GetByID(ctx context.Context, id uint) (*subscription.TrainerSubscription, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*subscription.TrainerSubscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepo) GetBySID(ctx context.Context, sid string) (*subscription.TrainerSubscription, error) {
	args := m.Called(ctx, sid)
	if v := args.Get(0); v != nil {
		return v.(*subscription.TrainerSubscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepo) GetByTrainerID(ctx context.Context, trainerID uint) (*subscription.TrainerSubscription, error) {
	args := m.Called(ctx, trainerID)
	if v := args.Get(0); v != nil {
		return v.(*subscription.TrainerSubscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepo) GetOrCreateByTrainerID(ctx context.Context, trainerID uint) (*subscription.TrainerSubscription, bool, error) {
	args := m.Called(ctx, trainerID)
	if v := args.Get(0); v != nil {
		return v.(*subscription.TrainerSubscription), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockSubscriptionRepo) Update(ctx context.Context, sub *subscription.TrainerSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockSubscriptionRepo) GetByOrganizationID(ctx context.Context, orgID uint) ([]*subscription.TrainerSubscription, error) {
	args := m.Called(ctx, orgID)
	if v := args.Get(0); v != nil {
		return v.([]*subscription.TrainerSubscription), args.Error(1)
	}
	return nil, args.Error(1)
}

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
