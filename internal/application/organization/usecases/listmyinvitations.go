package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/shared/biztime"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type ListMyInvitationsCommand struct {
	Email string
}

// ListMyInvitationsUseCase lists pending valid invitations addressed to a
// trainer's email. Expired and accepted invitations are filtered out.
type ListMyInvitationsUseCase struct {
	invitationRepo organization.InvitationRepository
	orgRepo        organization.Repository
	logger         logger.Interface
}

func NewListMyInvitationsUseCase(
	invitationRepo organization.InvitationRepository,
	orgRepo organization.Repository,
	logger logger.Interface,
) *ListMyInvitationsUseCase {
	return &ListMyInvitationsUseCase{
		invitationRepo: invitationRepo,
		orgRepo:        orgRepo,
		logger:         logger,
	}
}

func (uc *ListMyInvitationsUseCase) Execute(ctx context.Context, cmd ListMyInvitationsCommand) ([]InvitationDTO, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	invitations, err := uc.invitationRepo.ListPendingByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to list invitations", "error", err, "email", email)
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	now := biztime.NowUTC()
	dtos := make([]InvitationDTO, 0, len(invitations))
	for _, inv := range invitations {
		if !inv.IsValid(now) {
			continue
		}

		dto := InvitationDTO{
			SID:       inv.SID(),
			Email:     inv.Email(),
			Token:     inv.Token(),
			Accepted:  inv.Accepted(),
			ExpiresAt: inv.ExpiresAt(),
			CreatedAt: inv.CreatedAt(),
		}
		org, err := uc.orgRepo.GetByID(ctx, inv.OrganizationID())
		if err != nil {
			uc.logger.Warnw("failed to resolve organization", "error", err, "organization_id", inv.OrganizationID())
		} else if org != nil {
			dto.OrganizationSID = org.SID()
			dto.OrganizationName = org.Name()
		}
		dtos = append(dtos, dto)
	}

	return dtos, nil
}
