package plan

import "context"

// Repository is the injected read-mostly plan catalog. Plans are seeded once
// and read thereafter; every service call receives this repository instead of
// consulting ambient state.
type Repository interface {
	Create(ctx context.Context, p *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	GetByKey(ctx context.Context, key Key) (*Plan, error)
	Update(ctx context.Context, p *Plan) error

	// ListActive returns active plans; orgPlans filters on the is_org_plan
	// flag when non-nil.
	ListActive(ctx context.Context, orgPlans *bool) ([]*Plan, error)
	ExistsByKey(ctx context.Context, key Key) (bool, error)
}
