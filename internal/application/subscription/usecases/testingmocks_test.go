package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fitmo-inc/fitmo/internal/domain/billing"
	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
)

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

func (m *mockSubscriptionRepo) GetByOrganizationID(ctx context.Context, orgID uint) ([]*subscription.TrainerSubscription, error) {
	args := m.Called(ctx, orgID)
	if v := args.Get(0); v != nil {
		return v.([]*subscription.TrainerSubscription), args.Error(1)
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

type mockOrgRepo struct {
	mock.Mock
}

func (m *mockOrgRepo) Create(ctx context.Context, org *organization.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *mockOrgRepo) GetByID(ctx context.Context, id uint) (*organization.Organization, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*organization.Organization), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrgRepo) GetBySID(ctx context.Context, sid string) (*organization.Organization, error) {
	args := m.Called(ctx, sid)
	if v := args.Get(0); v != nil {
		return v.(*organization.Organization), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrgRepo) GetByOwnerID(ctx context.Context, ownerID uint) (*organization.Organization, error) {
	args := m.Called(ctx, ownerID)
	if v := args.Get(0); v != nil {
		return v.(*organization.Organization), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrgRepo) Update(ctx context.Context, org *organization.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *mockOrgRepo) ExistsByOwnerID(ctx context.Context, ownerID uint) (bool, error) {
	args := m.Called(ctx, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrgRepo) GetByIDForUpdate(ctx context.Context, id uint) (*organization.Organization, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*organization.Organization), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBillingSubRepo struct {
	mock.Mock
}

func (m *mockBillingSubRepo) Create(ctx context.Context, sub *billing.BillingSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockBillingSubRepo) GetByID(ctx context.Context, id uint) (*billing.BillingSubscription, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*billing.BillingSubscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBillingSubRepo) GetByProviderSubscriptionID(ctx context.Context, providerSubID string) (*billing.BillingSubscription, error) {
	args := m.Called(ctx, providerSubID)
	if v := args.Get(0); v != nil {
		return v.(*billing.BillingSubscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBillingSubRepo) GetByTrainerSubscriptionID(ctx context.Context, trainerSubID uint) (*billing.BillingSubscription, error) {
	args := m.Called(ctx, trainerSubID)
	if v := args.Get(0); v != nil {
		return v.(*billing.BillingSubscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBillingSubRepo) GetByOrganizationID(ctx context.Context, orgID uint) (*billing.BillingSubscription, error) {
	args := m.Called(ctx, orgID)
	if v := args.Get(0); v != nil {
		return v.(*billing.BillingSubscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBillingSubRepo) Update(ctx context.Context, sub *billing.BillingSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, params billing.CheckoutParams) (*billing.CheckoutSession, error) {
	args := m.Called(ctx, params)
	if v := args.Get(0); v != nil {
		return v.(*billing.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) CancelSubscription(ctx context.Context, providerSubscriptionID string) error {
	args := m.Called(ctx, providerSubscriptionID)
	return args.Error(0)
}
