package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	"github.com/fitmo-inc/fitmo/internal/shared/db"
)

// newTestTxManager backs the transaction manager with an in-memory database
// so transactional use cases run against mocked repositories.
func newTestTxManager(t *testing.T) *db.TransactionManager {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db.NewTransactionManager(gdb)
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

type mockInvitationRepo struct {
	mock.Mock
}

func (m *mockInvitationRepo) Upsert(ctx context.Context, inv *organization.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *mockInvitationRepo) GetByToken(ctx context.Context, token string) (*organization.Invitation, error) {
	args := m.Called(ctx, token)
	if v := args.Get(0); v != nil {
		return v.(*organization.Invitation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInvitationRepo) GetByOrganizationAndEmail(ctx context.Context, orgID uint, email string) (*organization.Invitation, error) {
	args := m.Called(ctx, orgID, email)
	if v := args.Get(0); v != nil {
		return v.(*organization.Invitation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInvitationRepo) ListPendingByEmail(ctx context.Context, email string) ([]*organization.Invitation, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.([]*organization.Invitation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInvitationRepo) Update(ctx context.Context, inv *organization.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

type mockSeatOverageRepo struct {
	mock.Mock
}

func (m *mockSeatOverageRepo) Create(ctx context.Context, overage *organization.SeatOverage) error {
	args := m.Called(ctx, overage)
	return args.Error(0)
}

func (m *mockSeatOverageRepo) ListActiveByOrganizationID(ctx context.Context, orgID uint) ([]*organization.SeatOverage, error) {
	args := m.Called(ctx, orgID)
	if v := args.Get(0); v != nil {
		return v.([]*organization.SeatOverage), args.Error(1)
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

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendInvitation(ctx context.Context, toEmail, orgName, token string, expiresAt time.Time) error {
	args := m.Called(ctx, toEmail, orgName, token, expiresAt)
	return args.Error(0)
}
