package usecases

import (
	"time"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/domain/plan"
)

// OrganizationDTO is the API view of an organization with its seat usage
// resolved against the attached plan.
type OrganizationDTO struct {
	SID                 string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	OwnerID             uint       `json:"owner_id"`
	PlanKey             string     `json:"plan_key,omitempty"`
	PlanName            string     `json:"plan_name,omitempty"`
	SeatsUsed           int        `json:"seats_used"`
	IncludedSeats       int        `json:"included_seats"`
	ExtraSeatsPurchased int        `json:"extra_seats_purchased"`
	TotalSeats          int        `json:"total_seats"`
	AvailableSeats      int        `json:"available_seats"`
	IsTrial             bool       `json:"is_trial"`
	TrialEnd            *time.Time `json:"trial_end,omitempty"`
	IsActive            bool       `json:"is_active"`
	CreatedAt           time.Time  `json:"created_at"`
}

// ToOrganizationDTO maps an organization and its resolved plan (nil when no
// plan is attached) to the API representation.
func ToOrganizationDTO(org *organization.Organization, p *plan.Plan) *OrganizationDTO {
	dto := &OrganizationDTO{
		SID:                 org.SID(),
		Name:                org.Name(),
		Email:               org.Email(),
		OwnerID:             org.OwnerID(),
		SeatsUsed:           org.SeatsUsed(),
		ExtraSeatsPurchased: org.ExtraSeatsPurchased(),
		TotalSeats:          org.TotalSeats(p),
		AvailableSeats:      org.AvailableSeats(p),
		IsTrial:             org.IsTrial(),
		TrialEnd:            org.TrialEnd(),
		IsActive:            org.IsActive(),
		CreatedAt:           org.CreatedAt(),
	}
	if p != nil {
		dto.PlanKey = string(p.Key())
		dto.PlanName = p.Name()
		dto.IncludedSeats = p.IncludedSeats()
	}
	return dto
}

// InvitationDTO is the API view of an organization invitation. The token is
// only exposed to the invitee, never in owner-facing listings.
type InvitationDTO struct {
	SID              string    `json:"id"`
	OrganizationSID  string    `json:"organization_id"`
	OrganizationName string    `json:"organization_name,omitempty"`
	Email            string    `json:"email"`
	Token            string    `json:"token,omitempty"`
	Accepted         bool      `json:"accepted"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// RosterEntryDTO is one trainer seat in the organization roster.
type RosterEntryDTO struct {
	TrainerID       uint       `json:"trainer_id"`
	SubscriptionSID string     `json:"subscription_id"`
	JoinedAt        time.Time  `json:"joined_at"`
	IsActive        bool       `json:"is_active"`
	TrialEnd        *time.Time `json:"trial_end,omitempty"`
}
