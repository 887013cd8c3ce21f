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
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

func activeBillingSub(t *testing.T) *billing.BillingSubscription {
	t.Helper()
	now := time.Now().UTC()
	bsub, err := billing.ReconstructBillingSubscription(
		4, "bsub_test", uintPtr(5), nil,
		1,
		"cus_1", "sub_provider_1",
		billing.CycleMonthly, billing.StatusActive,
		now.Add(-10*24*time.Hour), now.Add(20*24*time.Hour),
		0, nil,
		now, now,
	)
	require.NoError(t, err)
	return bsub
}

func newCancelUC(subRepo *mockSubscriptionRepo, billingSubRepo *mockBillingSubRepo, gateway *mockGateway) *CancelSubscriptionUseCase {
	return NewCancelSubscriptionUseCase(subRepo, billingSubRepo, gateway, logger.NewLogger())
}

func TestCancelSubscription_CancelsProviderSide(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	billingSubRepo := new(mockBillingSubRepo)
	gateway := new(mockGateway)
	uc := newCancelUC(subRepo, billingSubRepo, gateway)

	sub := paidSubOnBasic(t)
	bsub := activeBillingSub(t)

	subRepo.On("GetByTrainerID", mock.Anything, uint(9)).Return(sub, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	billingSubRepo.On("GetByTrainerSubscriptionID", mock.Anything, uint(5)).Return(bsub, nil)
	gateway.On("CancelSubscription", mock.Anything, "sub_provider_1").Return(nil)
	billingSubRepo.On("Update", mock.Anything, bsub).Return(nil)

	err := uc.Execute(context.Background(), CancelSubscriptionCommand{TrainerID: 9})

	require.NoError(t, err)
	assert.False(t, sub.IsActive())
	assert.Equal(t, billing.StatusCancelled, bsub.Status())
	gateway.AssertExpectations(t)
	billingSubRepo.AssertExpectations(t)
}

func TestCancelSubscription_GatewayFailureIsNotFatal(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	billingSubRepo := new(mockBillingSubRepo)
	gateway := new(mockGateway)
	uc := newCancelUC(subRepo, billingSubRepo, gateway)

	sub := paidSubOnBasic(t)
	bsub := activeBillingSub(t)

	subRepo.On("GetByTrainerID", mock.Anything, uint(9)).Return(sub, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	billingSubRepo.On("GetByTrainerSubscriptionID", mock.Anything, uint(5)).Return(bsub, nil)
	gateway.On("CancelSubscription", mock.Anything, "sub_provider_1").Return(errors.New("provider unavailable"))

	err := uc.Execute(context.Background(), CancelSubscriptionCommand{TrainerID: 9})

	// The local cancellation stands; the webhook settles the provider state.
	require.NoError(t, err)
	assert.False(t, sub.IsActive())
	billingSubRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelSubscription_NoProviderSubscription(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	billingSubRepo := new(mockBillingSubRepo)
	gateway := new(mockGateway)
	uc := newCancelUC(subRepo, billingSubRepo, gateway)

	sub := paidSubOnBasic(t)

	subRepo.On("GetByTrainerID", mock.Anything, uint(9)).Return(sub, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	billingSubRepo.On("GetByTrainerSubscriptionID", mock.Anything, uint(5)).Return(nil, nil)

	err := uc.Execute(context.Background(), CancelSubscriptionCommand{TrainerID: 9})

	require.NoError(t, err)
	assert.False(t, sub.IsActive())
	gateway.AssertNotCalled(t, "CancelSubscription", mock.Anything, mock.Anything)
}

func TestCancelSubscription_NotFound(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	uc := newCancelUC(subRepo, new(mockBillingSubRepo), new(mockGateway))

	subRepo.On("GetByTrainerID", mock.Anything, uint(9)).Return(nil, nil)

	err := uc.Execute(context.Background(), CancelSubscriptionCommand{TrainerID: 9})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestCancelSubscription_AlreadyCancelled(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	uc := newCancelUC(subRepo, new(mockBillingSubRepo), new(mockGateway))

	now := time.Now().UTC()
	cancelled, err := subscription.ReconstructTrainerSubscription(
		5, "sub_abc123", 9,
		nil, uintPtr(1),
		false,
		nil, nil, false,
		nil, nil,
		false, false,
		now, now,
	)
	require.NoError(t, err)

	subRepo.On("GetByTrainerID", mock.Anything, uint(9)).Return(cancelled, nil)

	err = uc.Execute(context.Background(), CancelSubscriptionCommand{TrainerID: 9})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
	subRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelSubscription_OrgCovered(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	uc := newCancelUC(subRepo, new(mockBillingSubRepo), new(mockGateway))

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

	subRepo.On("GetByTrainerID", mock.Anything, uint(9)).Return(covered, nil)

	err = uc.Execute(context.Background(), CancelSubscriptionCommand{TrainerID: 9})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
}
