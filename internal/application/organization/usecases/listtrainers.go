package usecases

import (
	"context"
	"fmt"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
	apperrors "github.com/fitmo-inc/fitmo/internal/shared/errors"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type ListTrainersCommand struct {
	RequesterID     uint
	OrganizationSID string
}

// ListTrainersUseCase returns the organization roster. Members can see it;
// non-members cannot.
type ListTrainersUseCase struct {
	orgRepo          organization.Repository
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewListTrainersUseCase(
	orgRepo organization.Repository,
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *ListTrainersUseCase {
	return &ListTrainersUseCase{
		orgRepo:          orgRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *ListTrainersUseCase) Execute(ctx context.Context, cmd ListTrainersCommand) ([]RosterEntryDTO, error) {
	org, err := uc.orgRepo.GetBySID(ctx, cmd.OrganizationSID)
	if err != nil {
		uc.logger.Errorw("failed to get organization", "error", err, "organization_sid", cmd.OrganizationSID)
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org == nil {
		return nil, apperrors.NewNotFoundError("organization not found")
	}

	members, err := uc.subscriptionRepo.GetByOrganizationID(ctx, org.ID())
	if err != nil {
		uc.logger.Errorw("failed to list members", "error", err, "organization_id", org.ID())
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	if !uc.canView(org, members, cmd.RequesterID) {
		return nil, apperrors.NewForbiddenError("only organization members can view the roster")
	}

	roster := make([]RosterEntryDTO, 0, len(members))
	for _, sub := range members {
		roster = append(roster, RosterEntryDTO{
			TrainerID:       sub.TrainerID(),
			SubscriptionSID: sub.SID(),
			JoinedAt:        sub.UpdatedAt(),
			IsActive:        sub.IsActive(),
			TrialEnd:        sub.TrialEnd(),
		})
	}

	return roster, nil
}

func (uc *ListTrainersUseCase) canView(org *organization.Organization, members []*subscription.TrainerSubscription, requesterID uint) bool {
	if org.OwnerID() == requesterID {
		return true
	}
	for _, sub := range members {
		if sub.TrainerID() == requesterID {
			return true
		}
	}
	return false
}
