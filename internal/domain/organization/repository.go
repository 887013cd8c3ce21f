package organization

import "context"

type Repository interface {
	Create(ctx context.Context, org *Organization) error
	GetByID(ctx context.Context, id uint) (*Organization, error)
	GetBySID(ctx context.Context, sid string) (*Organization, error)
	GetByOwnerID(ctx context.Context, ownerID uint) (*Organization, error)
	Update(ctx context.Context, org *Organization) error
	ExistsByOwnerID(ctx context.Context, ownerID uint) (bool, error)

	// GetByIDForUpdate loads the organization under a row lock. Must be
	// called inside a transaction; seat-mutating operations rely on it so
	// two concurrent seat checks cannot both pass and overshoot capacity.
	GetByIDForUpdate(ctx context.Context, id uint) (*Organization, error)
}

type InvitationRepository interface {
	// Upsert creates or replaces the invitation for its (organization,
	// email) pair.
	Upsert(ctx context.Context, inv *Invitation) error
	GetByToken(ctx context.Context, token string) (*Invitation, error)
	GetByOrganizationAndEmail(ctx context.Context, orgID uint, email string) (*Invitation, error)
	ListPendingByEmail(ctx context.Context, email string) ([]*Invitation, error)
	Update(ctx context.Context, inv *Invitation) error
}

type SeatOverageRepository interface {
	Create(ctx context.Context, overage *SeatOverage) error
	ListActiveByOrganizationID(ctx context.Context, orgID uint) ([]*SeatOverage, error)
}
