package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

func uintPtr(v uint) *uint { return &v }

func clubPlan(t *testing.T) *plan.Plan {
	t.Helper()
	p, err := plan.ReconstructPlan(
		3, "plan_club", plan.KeyClub, "Club", "",
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

func orgWithSeats(t *testing.T, seatsUsed, extraSeats int) *organization.Organization {
	t.Helper()
	now := time.Now().UTC()
	start := now.Add(-10 * 24 * time.Hour)
	end := now.Add(20 * 24 * time.Hour)
	org, err := organization.ReconstructOrganization(
		2, "org_abc123", "Iron Temple", "owner@irontemple.ma",
		9,
		uintPtr(3),
		seatsUsed, extraSeats,
		false,
		nil, nil, &start, &end,
		true,
		now, now,
	)
	require.NoError(t, err)
	return org
}

func newInviteUC(orgRepo *mockOrgRepo, invRepo *mockInvitationRepo, planRepo *mockPlanRepo, mailer *mockMailer) *InviteTrainerUseCase {
	return NewInviteTrainerUseCase(orgRepo, invRepo, planRepo, mailer, logger.NewLogger())
}

func TestInviteTrainer_CreatesInvitation(t *testing.T) {
	orgRepo := new(mockOrgRepo)
	invRepo := new(mockInvitationRepo)
	planRepo := new(mockPlanRepo)
	mailer := new(mockMailer)
	uc := newInviteUC(orgRepo, invRepo, planRepo, mailer)

	org := orgWithSeats(t, 3, 0)
	orgRepo.On("GetBySID", mock.Anything, "org_abc123").Return(org, nil)
	planRepo.On("GetByID", mock.Anything, uint(3)).Return(clubPlan(t), nil)
	invRepo.On("GetByOrganizationAndEmail", mock.Anything, uint(2), "coach@fitmo.ma").Return(nil, nil)
	invRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(inv *organization.Invitation) bool {
		return inv.Email() == "coach@fitmo.ma" && inv.OrganizationID() == 2 && !inv.Accepted()
	})).Return(nil)
	mailer.On("SendInvitation", mock.Anything, "coach@fitmo.ma", "Iron Temple", mock.Anything, mock.Anything).Return(nil)

	dto, err := uc.Execute(context.Background(), InviteTrainerCommand{
		RequesterID:     9,
		OrganizationSID: "org_abc123",
		Email:           "  Coach@Fitmo.MA ",
	})

	require.NoError(t, err)
	assert.Equal(t, "coach@fitmo.ma", dto.Email)
	assert.Equal(t, "org_abc123", dto.OrganizationSID)
	assert.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), dto.ExpiresAt, time.Minute)
	invRepo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestInviteTrainer_ReinviteRotatesToken(t *testing.T) {
	orgRepo := new(mockOrgRepo)
	invRepo := new(mockInvitationRepo)
	planRepo := new(mockPlanRepo)
	mailer := new(mockMailer)
	uc := newInviteUC(orgRepo, invRepo, planRepo, mailer)

	org := orgWithSeats(t, 3, 0)
	now := time.Now().UTC()
	existing, err := organization.NewInvitation(2, "coach@fitmo.ma", "old-token", 9, now.Add(-3*24*time.Hour))
	require.NoError(t, err)

	orgRepo.On("GetBySID", mock.Anything, "org_abc123").Return(org, nil)
	planRepo.On("GetByID", mock.Anything, uint(3)).Return(clubPlan(t), nil)
	invRepo.On("GetByOrganizationAndEmail", mock.Anything, uint(2), "coach@fitmo.ma").Return(existing, nil)
	invRepo.On("Upsert", mock.Anything, existing).Return(nil)
	mailer.On("SendInvitation", mock.Anything, "coach@fitmo.ma", "Iron Temple", mock.Anything, mock.Anything).Return(nil)

	dto, err := uc.Execute(context.Background(), InviteTrainerCommand{
		RequesterID:     9,
		OrganizationSID: "org_abc123",
		Email:           "coach@fitmo.ma",
	})

	require.NoError(t, err)
	assert.NotEqual(t, "old-token", existing.Token())
	assert.WithinDuration(t, now.Add(7*24*time.Hour), dto.ExpiresAt, time.Minute)
	invRepo.AssertExpectations(t)
}

func TestInviteTrainer_NoSeatsAvailable(t *testing.T) {
	orgRepo := new(mockOrgRepo)
	invRepo := new(mockInvitationRepo)
	planRepo := new(mockPlanRepo)
	uc := newInviteUC(orgRepo, invRepo, planRepo, new(mockMailer))

	org := orgWithSeats(t, 10, 0)
	orgRepo.On("GetBySID", mock.Anything, "org_abc123").Return(org, nil)
	planRepo.On("GetByID", mock.Anything, uint(3)).Return(clubPlan(t), nil)

	_, err := uc.Execute(context.Background(), InviteTrainerCommand{
		RequesterID:     9,
		OrganizationSID: "org_abc123",
		Email:           "coach@fitmo.ma",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
	assert.Contains(t, appErr.Message, "10/10")
	invRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestInviteTrainer_OnlyOwner(t *testing.T) {
	orgRepo := new(mockOrgRepo)
	uc := newInviteUC(orgRepo, new(mockInvitationRepo), new(mockPlanRepo), new(mockMailer))

	org := orgWithSeats(t, 3, 0)
	orgRepo.On("GetBySID", mock.Anything, "org_abc123").Return(org, nil)

	_, err := uc.Execute(context.Background(), InviteTrainerCommand{
		RequesterID:     42,
		OrganizationSID: "org_abc123",
		Email:           "coach@fitmo.ma",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
}

func TestInviteTrainer_EmptyEmail(t *testing.T) {
	uc := newInviteUC(new(mockOrgRepo), new(mockInvitationRepo), new(mockPlanRepo), new(mockMailer))

	_, err := uc.Execute(context.Background(), InviteTrainerCommand{
		RequesterID:     9,
		OrganizationSID: "org_abc123",
		Email:           "   ",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestInviteTrainer_MailFailureIsNotFatal(t *testing.T) {
	orgRepo := new(mockOrgRepo)
	invRepo := new(mockInvitationRepo)
	planRepo := new(mockPlanRepo)
	mailer := new(mockMailer)
	uc := newInviteUC(orgRepo, invRepo, planRepo, mailer)

	org := orgWithSeats(t, 3, 0)
	orgRepo.On("GetBySID", mock.Anything, "org_abc123").Return(org, nil)
	planRepo.On("GetByID", mock.Anything, uint(3)).Return(clubPlan(t), nil)
	invRepo.On("GetByOrganizationAndEmail", mock.Anything, uint(2), "coach@fitmo.ma").Return(nil, nil)
	invRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendInvitation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp timeout"))

	dto, err := uc.Execute(context.Background(), InviteTrainerCommand{
		RequesterID:     9,
		OrganizationSID: "org_abc123",
		Email:           "coach@fitmo.ma",
	})

	require.NoError(t, err)
	assert.Equal(t, "coach@fitmo.ma", dto.Email)
}
