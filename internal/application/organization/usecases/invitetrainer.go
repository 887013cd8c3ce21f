package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/shared/biztime"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/id"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

// inviteTokenLength sizes the random invitation token. Tokens are
// bearer-style, so they get more entropy than plain short IDs.
const inviteTokenLength = 32

type InviteTrainerCommand struct {
	RequesterID     uint
	OrganizationSID string
	Email           string
}

// InviteTrainerUseCase invites an email address to join an organization.
// Re-inviting the same email rotates the token instead of stacking a second
// invitation. Inviting fails once the plan's seats are exhausted; the seat
// is occupied only when the invitation is accepted.
type InviteTrainerUseCase struct {
	orgRepo        organization.Repository
	invitationRepo organization.InvitationRepository
	planRepo       plan.Repository
	mailer         InvitationMailer
	logger         logger.Interface
}

func NewInviteTrainerUseCase(
	orgRepo organization.Repository,
	invitationRepo organization.InvitationRepository,
	planRepo plan.Repository,
	mailer InvitationMailer,
	logger logger.Interface,
) *InviteTrainerUseCase {
	return &InviteTrainerUseCase{
		orgRepo:        orgRepo,
		invitationRepo: invitationRepo,
		planRepo:       planRepo,
		mailer:         mailer,
		logger:         logger,
	}
}

func (uc *InviteTrainerUseCase) Execute(ctx context.Context, cmd InviteTrainerCommand) (*InvitationDTO, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" {
		return nil, apperrors.NewValidationError("email is required")
	}

	org, err := uc.orgRepo.GetBySID(ctx, cmd.OrganizationSID)
	if err != nil {
		uc.logger.Errorw("failed to get organization", "error", err, "organization_sid", cmd.OrganizationSID)
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org == nil {
		return nil, apperrors.NewNotFoundError("organization not found")
	}
	if org.OwnerID() != cmd.RequesterID {
		return nil, apperrors.NewForbiddenError("only the organization owner can invite trainers")
	}

	if org.PlanID() == nil {
		return nil, apperrors.NewConflictError("organization has no plan")
	}
	orgPlan, err := uc.planRepo.GetByID(ctx, *org.PlanID())
	if err != nil {
		uc.logger.Errorw("failed to get organization plan", "error", err, "plan_id", *org.PlanID())
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if !org.CanAddTrainer(orgPlan) {
		return nil, apperrors.NewConflictError(
			organization.NewNoSeatsError(org.SeatsUsed(), org.TotalSeats(orgPlan)).Error())
	}

	token, err := id.Generate(inviteTokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation token: %w", err)
	}

	now := biztime.NowUTC()

	inv, err := uc.invitationRepo.GetByOrganizationAndEmail(ctx, org.ID(), email)
	if err != nil {
		uc.logger.Errorw("failed to look up invitation", "error", err, "organization_id", org.ID())
		return nil, fmt.Errorf("failed to look up invitation: %w", err)
	}
	if inv != nil {
		if err := inv.Renew(token, cmd.RequesterID, now); err != nil {
			return nil, fmt.Errorf("failed to renew invitation: %w", err)
		}
	} else {
		inv, err = organization.NewInvitation(org.ID(), email, token, cmd.RequesterID, now)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if err := uc.invitationRepo.Upsert(ctx, inv); err != nil {
		uc.logger.Errorw("failed to save invitation", "error", err, "organization_id", org.ID())
		return nil, fmt.Errorf("failed to save invitation: %w", err)
	}

	if uc.mailer != nil {
		if err := uc.mailer.SendInvitation(ctx, email, org.Name(), token, inv.ExpiresAt()); err != nil {
			uc.logger.Warnw("failed to send invitation email", "error", err, "email", email)
		}
	}

	uc.logger.Infow("trainer invited",
		"organization_sid", cmd.OrganizationSID,
		"email", email,
		"expires_at", inv.ExpiresAt(),
	)

	return &InvitationDTO{
		SID:              inv.SID(),
		OrganizationSID:  org.SID(),
		OrganizationName: org.Name(),
		Email:            inv.Email(),
		Accepted:         inv.Accepted(),
		ExpiresAt:        inv.ExpiresAt(),
		CreatedAt:        inv.CreatedAt(),
	}, nil
}
