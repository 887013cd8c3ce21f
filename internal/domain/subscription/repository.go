package subscription

import "context"

type Repository interface {
	Create(ctx context.Context, sub *TrainerSubscription) error
	GetByID(ctx context.Context, id uint) (*TrainerSubscription, error)
	GetBySID(ctx context.Context, sid string) (*TrainerSubscription, error)
	GetByTrainerID(ctx context.Context, trainerID uint) (*TrainerSubscription, error)
	GetByOrganizationID(ctx context.Context, orgID uint) ([]*TrainerSubscription, error)
	Update(ctx context.Context, sub *TrainerSubscription) error

	// GetOrCreateByTrainerID returns the trainer's subscription, creating a
	// bare record when none exists. The second result reports whether a new
	// record was created, so callers see the decision instead of it being
	// hidden inside a query.
	GetOrCreateByTrainerID(ctx context.Context, trainerID uint) (*TrainerSubscription, bool, error)
}
