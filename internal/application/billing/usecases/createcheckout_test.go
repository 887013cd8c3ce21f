package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fitmo-inc/fitmo/internal/domain/billing"
	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

func testOrgPlan(t *testing.T, id uint) *plan.Plan {
	t.Helper()
	p, err := plan.ReconstructPlan(
		id, "plan_club", plan.KeyClub, "Club", "",
		99900, 999000,
		true, 10, 5000,
		15, 14,
		true, true,
		nil,
		time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return p
}

func testOrganization(t *testing.T, id, ownerID uint) *organization.Organization {
	t.Helper()
	now := time.Now().UTC()
	org, err := organization.ReconstructOrganization(
		id, "org_abc123", "Iron Temple", "owner@irontemple.ma",
		ownerID,
		nil,
		0, 0,
		false,
		nil, nil, nil, nil,
		true,
		now, now,
	)
	require.NoError(t, err)
	return org
}

func newCheckoutUC(planRepo *mockPlanRepo, subRepo *mockSubscriptionRepo, orgRepo *mockOrgRepo, gateway *mockGateway) *CreateCheckoutUseCase {
	return NewCreateCheckoutUseCase(planRepo, subRepo, orgRepo, gateway, logger.NewLogger())
}

func TestCreateCheckout_PersonalMonthly(t *testing.T) {
	planRepo := new(mockPlanRepo)
	subRepo := new(mockSubscriptionRepo)
	orgRepo := new(mockOrgRepo)
	gateway := new(mockGateway)
	uc := newCheckoutUC(planRepo, subRepo, orgRepo, gateway)

	p := testPlan(t, 7, plan.KeyPremium, 29900)
	sub := testTrainerSub(t, 5, "sub_abc123", nil)

	planRepo.On("GetByKey", mock.Anything, plan.KeyPremium).Return(p, nil)
	subRepo.On("GetOrCreateByTrainerID", mock.Anything, uint(9)).Return(sub, false, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(params billing.CheckoutParams) bool {
		return params.SubjectSID == "sub_abc123" &&
			params.Amount == 29900 &&
			params.Cycle == billing.CycleMonthly &&
			params.CustomerEmail == "coach@fitmo.ma"
	})).Return(&billing.CheckoutSession{SessionID: "cs_1", URL: "https://pay.example/cs_1"}, nil)

	dto, err := uc.Execute(context.Background(), CreateCheckoutCommand{
		TrainerID:    9,
		TrainerEmail: "coach@fitmo.ma",
		PlanKey:      "premium",
		Cycle:        "monthly",
		SuccessURL:   "https://app.fitmo.ma/billing/success",
		CancelURL:    "https://app.fitmo.ma/billing/cancel",
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_1", dto.SessionID)
	assert.Equal(t, "https://pay.example/cs_1", dto.URL)
	gateway.AssertExpectations(t)
}

func TestCreateCheckout_AnnualUsesAnnualPrice(t *testing.T) {
	planRepo := new(mockPlanRepo)
	subRepo := new(mockSubscriptionRepo)
	orgRepo := new(mockOrgRepo)
	gateway := new(mockGateway)
	uc := newCheckoutUC(planRepo, subRepo, orgRepo, gateway)

	p := testPlan(t, 7, plan.KeyPremium, 29900)
	sub := testTrainerSub(t, 5, "sub_abc123", nil)

	planRepo.On("GetByKey", mock.Anything, plan.KeyPremium).Return(p, nil)
	subRepo.On("GetOrCreateByTrainerID", mock.Anything, uint(9)).Return(sub, false, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(params billing.CheckoutParams) bool {
		return params.Amount == 299000 && params.Cycle == billing.CycleAnnual
	})).Return(&billing.CheckoutSession{SessionID: "cs_2", URL: "https://pay.example/cs_2"}, nil)

	_, err := uc.Execute(context.Background(), CreateCheckoutCommand{
		TrainerID:    9,
		TrainerEmail: "coach@fitmo.ma",
		PlanKey:      "premium",
		Cycle:        "annual",
	})

	require.NoError(t, err)
	gateway.AssertExpectations(t)
}

func TestCreateCheckout_UnknownPlanKey(t *testing.T) {
	planRepo := new(mockPlanRepo)
	uc := newCheckoutUC(planRepo, new(mockSubscriptionRepo), new(mockOrgRepo), new(mockGateway))

	_, err := uc.Execute(context.Background(), CreateCheckoutCommand{
		TrainerID: 9,
		PlanKey:   "platinum",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestCreateCheckout_FreePlanRejected(t *testing.T) {
	planRepo := new(mockPlanRepo)
	uc := newCheckoutUC(planRepo, new(mockSubscriptionRepo), new(mockOrgRepo), new(mockGateway))

	free := testPlan(t, 1, plan.KeyBasic, 0)
	planRepo.On("GetByKey", mock.Anything, plan.KeyBasic).Return(free, nil)

	_, err := uc.Execute(context.Background(), CreateCheckoutCommand{
		TrainerID: 9,
		PlanKey:   "basic",
		Cycle:     "monthly",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestCreateCheckout_OrgPlan(t *testing.T) {
	planRepo := new(mockPlanRepo)
	subRepo := new(mockSubscriptionRepo)
	orgRepo := new(mockOrgRepo)
	gateway := new(mockGateway)
	uc := newCheckoutUC(planRepo, subRepo, orgRepo, gateway)

	p := testOrgPlan(t, 3)
	org := testOrganization(t, 2, 9)

	planRepo.On("GetByKey", mock.Anything, plan.KeyClub).Return(p, nil)
	orgRepo.On("GetBySID", mock.Anything, "org_abc123").Return(org, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(params billing.CheckoutParams) bool {
		return params.SubjectSID == "org_abc123" && params.Amount == 99900
	})).Return(&billing.CheckoutSession{SessionID: "cs_3", URL: "https://pay.example/cs_3"}, nil)

	_, err := uc.Execute(context.Background(), CreateCheckoutCommand{
		TrainerID:       9,
		TrainerEmail:    "owner@irontemple.ma",
		PlanKey:         "club",
		Cycle:           "monthly",
		OrganizationSID: "org_abc123",
	})

	require.NoError(t, err)
	subRepo.AssertNotCalled(t, "GetOrCreateByTrainerID", mock.Anything, mock.Anything)
	gateway.AssertExpectations(t)
}

func TestCreateCheckout_OrgPlanOnlyOwner(t *testing.T) {
	planRepo := new(mockPlanRepo)
	orgRepo := new(mockOrgRepo)
	uc := newCheckoutUC(planRepo, new(mockSubscriptionRepo), orgRepo, new(mockGateway))

	p := testOrgPlan(t, 3)
	org := testOrganization(t, 2, 9)

	planRepo.On("GetByKey", mock.Anything, plan.KeyClub).Return(p, nil)
	orgRepo.On("GetBySID", mock.Anything, "org_abc123").Return(org, nil)

	_, err := uc.Execute(context.Background(), CreateCheckoutCommand{
		TrainerID:       42,
		PlanKey:         "club",
		Cycle:           "monthly",
		OrganizationSID: "org_abc123",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
}

func TestCreateCheckout_OrgPlanWithoutOrganization(t *testing.T) {
	planRepo := new(mockPlanRepo)
	uc := newCheckoutUC(planRepo, new(mockSubscriptionRepo), new(mockOrgRepo), new(mockGateway))

	p := testOrgPlan(t, 3)
	planRepo.On("GetByKey", mock.Anything, plan.KeyClub).Return(p, nil)

	_, err := uc.Execute(context.Background(), CreateCheckoutCommand{
		TrainerID: 9,
		PlanKey:   "club",
		Cycle:     "monthly",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestCreateCheckout_OrgCoveredTrainerRejected(t *testing.T) {
	planRepo := new(mockPlanRepo)
	subRepo := new(mockSubscriptionRepo)
	uc := newCheckoutUC(planRepo, subRepo, new(mockOrgRepo), new(mockGateway))

	p := testPlan(t, 7, plan.KeyPremium, 29900)

	now := time.Now().UTC()
	covered, err := subscription.ReconstructTrainerSubscription(
		5, "sub_abc123", 9,
		uintPtr(2), nil,
		false,
		nil, nil, false,
		nil, nil,
		true, true,
		now, now,
	)
	require.NoError(t, err)

	planRepo.On("GetByKey", mock.Anything, plan.KeyPremium).Return(p, nil)
	subRepo.On("GetOrCreateByTrainerID", mock.Anything, uint(9)).Return(covered, false, nil)

	_, err = uc.Execute(context.Background(), CreateCheckoutCommand{
		TrainerID: 9,
		PlanKey:   "premium",
		Cycle:     "monthly",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
}

func TestCreateCheckout_GatewayFailure(t *testing.T) {
	planRepo := new(mockPlanRepo)
	subRepo := new(mockSubscriptionRepo)
	gateway := new(mockGateway)
	uc := newCheckoutUC(planRepo, subRepo, new(mockOrgRepo), gateway)

	p := testPlan(t, 7, plan.KeyPremium, 29900)
	sub := testTrainerSub(t, 5, "sub_abc123", nil)

	planRepo.On("GetByKey", mock.Anything, plan.KeyPremium).Return(p, nil)
	subRepo.On("GetOrCreateByTrainerID", mock.Anything, uint(9)).Return(sub, false, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything).Return(nil, errors.New("provider unavailable"))

	_, err := uc.Execute(context.Background(), CreateCheckoutCommand{
		TrainerID: 9,
		PlanKey:   "premium",
		Cycle:     "monthly",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypePaymentProvider, appErr.Type)
}
