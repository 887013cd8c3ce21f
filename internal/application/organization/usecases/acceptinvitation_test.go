package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

func freshTrainerSub(t *testing.T, trainerID uint) *subscription.TrainerSubscription {
	t.Helper()
	now := time.Now().UTC()
	sub, err := subscription.ReconstructTrainerSubscription(
		5, "sub_abc123", trainerID,
		nil, nil,
		false,
		nil, nil, false,
		nil, nil,
		false, true,
		now, now,
	)
	require.NoError(t, err)
	return sub
}

func pendingInvitation(t *testing.T, email string) *organization.Invitation {
	t.Helper()
	now := time.Now().UTC()
	inv, err := organization.NewInvitation(2, email, "invite-token", 9, now)
	require.NoError(t, err)
	return inv
}

func newAcceptUC(t *testing.T, orgRepo *mockOrgRepo, invRepo *mockInvitationRepo, planRepo *mockPlanRepo, subRepo *mockSubscriptionRepo) *AcceptInvitationUseCase {
	return NewAcceptInvitationUseCase(orgRepo, invRepo, planRepo, subRepo, newTestTxManager(t), logger.NewLogger())
}

func TestAcceptInvitation_SeatsTheTrainer(t *testing.T) {
	orgRepo := new(mockOrgRepo)
	invRepo := new(mockInvitationRepo)
	planRepo := new(mockPlanRepo)
	subRepo := new(mockSubscriptionRepo)
	uc := newAcceptUC(t, orgRepo, invRepo, planRepo, subRepo)

	inv := pendingInvitation(t, "coach@fitmo.ma")
	org := orgWithSeats(t, 3, 0)
	sub := freshTrainerSub(t, 42)

	invRepo.On("GetByToken", mock.Anything, "invite-token").Return(inv, nil)
	orgRepo.On("GetByIDForUpdate", mock.Anything, uint(2)).Return(org, nil)
	planRepo.On("GetByID", mock.Anything, uint(3)).Return(clubPlan(t), nil)
	subRepo.On("GetOrCreateByTrainerID", mock.Anything, uint(42)).Return(sub, true, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	orgRepo.On("Update", mock.Anything, org).Return(nil)
	invRepo.On("Update", mock.Anything, inv).Return(nil)
	orgRepo.On("GetByID", mock.Anything, uint(2)).Return(org, nil)

	dto, err := uc.Execute(context.Background(), AcceptInvitationCommand{
		Token:        "invite-token",
		TrainerID:    42,
		TrainerEmail: "coach@fitmo.ma",
	})

	require.NoError(t, err)
	assert.True(t, inv.Accepted())
	assert.Equal(t, 4, org.SeatsUsed())
	require.NotNil(t, sub.OrganizationID())
	assert.Equal(t, uint(2), *sub.OrganizationID())
	assert.Equal(t, 4, dto.SeatsUsed)
	assert.Equal(t, 6, dto.AvailableSeats)
	invRepo.AssertExpectations(t)
	subRepo.AssertExpectations(t)
}

func TestAcceptInvitation_ExpiredToken(t *testing.T) {
	orgRepo := new(mockOrgRepo)
	invRepo := new(mockInvitationRepo)
	uc := newAcceptUC(t, orgRepo, invRepo, new(mockPlanRepo), new(mockSubscriptionRepo))

	now := time.Now().UTC()
	expired, err := organization.ReconstructInvitation(
		8, "in_old", 2,
		"coach@fitmo.ma", "invite-token",
		9,
		false, nil, nil,
		now.Add(-24*time.Hour), now.Add(-8*24*time.Hour), now.Add(-8*24*time.Hour),
	)
	require.NoError(t, err)

	invRepo.On("GetByToken", mock.Anything, "invite-token").Return(expired, nil)

	_, err = uc.Execute(context.Background(), AcceptInvitationCommand{
		Token:        "invite-token",
		TrainerID:    42,
		TrainerEmail: "coach@fitmo.ma",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
	orgRepo.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
}

func TestAcceptInvitation_EmailMismatch(t *testing.T) {
	invRepo := new(mockInvitationRepo)
	uc := newAcceptUC(t, new(mockOrgRepo), invRepo, new(mockPlanRepo), new(mockSubscriptionRepo))

	inv := pendingInvitation(t, "coach@fitmo.ma")
	invRepo.On("GetByToken", mock.Anything, "invite-token").Return(inv, nil)

	_, err := uc.Execute(context.Background(), AcceptInvitationCommand{
		Token:        "invite-token",
		TrainerID:    42,
		TrainerEmail: "someone.else@fitmo.ma",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
}

func TestAcceptInvitation_NoSeatsLeft(t *testing.T) {
	orgRepo := new(mockOrgRepo)
	invRepo := new(mockInvitationRepo)
	planRepo := new(mockPlanRepo)
	subRepo := new(mockSubscriptionRepo)
	uc := newAcceptUC(t, orgRepo, invRepo, planRepo, subRepo)

	inv := pendingInvitation(t, "coach@fitmo.ma")
	full := orgWithSeats(t, 10, 0)

	invRepo.On("GetByToken", mock.Anything, "invite-token").Return(inv, nil)
	orgRepo.On("GetByIDForUpdate", mock.Anything, uint(2)).Return(full, nil)
	planRepo.On("GetByID", mock.Anything, uint(3)).Return(clubPlan(t), nil)

	_, err := uc.Execute(context.Background(), AcceptInvitationCommand{
		Token:        "invite-token",
		TrainerID:    42,
		TrainerEmail: "coach@fitmo.ma",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
	subRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAcceptInvitation_UnknownToken(t *testing.T) {
	invRepo := new(mockInvitationRepo)
	uc := newAcceptUC(t, new(mockOrgRepo), invRepo, new(mockPlanRepo), new(mockSubscriptionRepo))

	invRepo.On("GetByToken", mock.Anything, "bogus").Return(nil, nil)

	_, err := uc.Execute(context.Background(), AcceptInvitationCommand{
		Token:        "bogus",
		TrainerID:    42,
		TrainerEmail: "coach@fitmo.ma",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}
