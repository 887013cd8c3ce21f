package organization

import (
	"fmt"
	"time"

	"github.com/fitmo-inc/fitmo/internal/domain/plan"
)

// Organization is the gym/club aggregate. Seat capacity comes from the
// attached plan's included seats plus purchased overage; seatsUsed counts
// trainers currently attached. Invariant after every seat-mutating
// operation: 0 <= seatsUsed <= includedSeats + extraSeatsPurchased.
type Organization struct {
	id                  uint
	sid                 string
	name                string
	email               string
	ownerID             uint
	planID              *uint
	seatsUsed           int
	extraSeatsPurchased int
	isTrial             bool
	trialStart          *time.Time
	trialEnd            *time.Time
	subscriptionStart   *time.Time
	subscriptionEnd     *time.Time
	isActive            bool
	createdAt           time.Time
	updatedAt           time.Time
}

// NewOrganization creates a new organization owned by ownerID. One
// organization per owner; the uniqueness is enforced at creation time by the
// application layer and a database constraint.
func NewOrganization(ownerID uint, name, email string) (*Organization, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("organization name is required")
	}
	if email == "" {
		return nil, fmt.Errorf("organization email is required")
	}

	now := time.Now().UTC()
	return &Organization{
		name:      name,
		email:     email,
		ownerID:   ownerID,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructOrganization reconstructs an organization from persistence.
func ReconstructOrganization(
	id uint,
	sid, name, email string,
	ownerID uint,
	planID *uint,
	seatsUsed, extraSeatsPurchased int,
	isTrial bool,
	trialStart, trialEnd, subscriptionStart, subscriptionEnd *time.Time,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*Organization, error) {
	if id == 0 {
		return nil, fmt.Errorf("organization ID cannot be zero")
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if seatsUsed < 0 {
		return nil, fmt.Errorf("seats used cannot be negative")
	}

	return &Organization{
		id:                  id,
		sid:                 sid,
		name:                name,
		email:               email,
		ownerID:             ownerID,
		planID:              planID,
		seatsUsed:           seatsUsed,
		extraSeatsPurchased: extraSeatsPurchased,
		isTrial:             isTrial,
		trialStart:          trialStart,
		trialEnd:            trialEnd,
		subscriptionStart:   subscriptionStart,
		subscriptionEnd:     subscriptionEnd,
		isActive:            isActive,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

func (o *Organization) ID() uint                     { return o.id }
func (o *Organization) SID() string                  { return o.sid }
func (o *Organization) Name() string                 { return o.name }
func (o *Organization) Email() string                { return o.email }
func (o *Organization) OwnerID() uint                { return o.ownerID }
func (o *Organization) PlanID() *uint                { return o.planID }
func (o *Organization) SeatsUsed() int               { return o.seatsUsed }
func (o *Organization) ExtraSeatsPurchased() int     { return o.extraSeatsPurchased }
func (o *Organization) IsTrial() bool                { return o.isTrial }
func (o *Organization) TrialStart() *time.Time       { return o.trialStart }
func (o *Organization) TrialEnd() *time.Time         { return o.trialEnd }
func (o *Organization) SubscriptionStart() *time.Time { return o.subscriptionStart }
func (o *Organization) SubscriptionEnd() *time.Time  { return o.subscriptionEnd }
func (o *Organization) IsActive() bool               { return o.isActive }
func (o *Organization) CreatedAt() time.Time         { return o.createdAt }
func (o *Organization) UpdatedAt() time.Time         { return o.updatedAt }

// SetID sets the organization ID (only for persistence layer use)
func (o *Organization) SetID(id uint) error {
	if o.id != 0 {
		return fmt.Errorf("organization ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("organization ID cannot be zero")
	}
	o.id = id
	return nil
}

// SetSID sets the short ID (only for persistence layer use)
func (o *Organization) SetSID(sid string) {
	if o.sid == "" {
		o.sid = sid
	}
}

// AttachPlanWithTrial attaches an organization plan and starts a trial window
// sized by the plan's trial days.
func (o *Organization) AttachPlanWithTrial(p *plan.Plan, now time.Time) error {
	if p == nil {
		return plan.ErrUnknownPlan
	}
	if !p.IsOrgPlan() {
		return plan.ErrNotOrgPlan
	}

	end := now.Add(time.Duration(p.TrialDays()) * 24 * time.Hour)
	planID := p.ID()

	o.planID = &planID
	o.isTrial = true
	o.trialStart = &now
	o.trialEnd = &end
	o.updatedAt = now
	return nil
}

// RenewUntil extends the paid window to end, reactivating the organization.
// A trial converts to paid on first renewal.
func (o *Organization) RenewUntil(end time.Time) {
	now := time.Now().UTC()
	if o.subscriptionStart == nil {
		o.subscriptionStart = &now
	}
	o.subscriptionEnd = &end
	o.isTrial = false
	o.isActive = true
	o.updatedAt = now
}

// Deactivate suspends the organization. Seats and membership links are kept
// for reactivation.
func (o *Organization) Deactivate() {
	o.isActive = false
	o.updatedAt = time.Now().UTC()
}

// TotalSeats returns included plus purchased seats under the given plan.
func (o *Organization) TotalSeats(p *plan.Plan) int {
	if p == nil {
		return o.extraSeatsPurchased
	}
	return p.IncludedSeats() + o.extraSeatsPurchased
}

// AvailableSeats returns the number of unoccupied seats under the given plan.
func (o *Organization) AvailableSeats(p *plan.Plan) int {
	return o.TotalSeats(p) - o.seatsUsed
}

// CanAddTrainer reports whether a trainer can occupy a seat: the organization
// must have a plan and at least one available seat.
func (o *Organization) CanAddTrainer(p *plan.Plan) bool {
	if o.planID == nil || p == nil {
		return false
	}
	return o.AvailableSeats(p) > 0
}

// OccupySeat increments seatsUsed after re-validating capacity. The caller
// must hold a row lock on the organization so a concurrent occupation cannot
// overshoot capacity.
func (o *Organization) OccupySeat(p *plan.Plan) error {
	if !o.CanAddTrainer(p) {
		return NewNoSeatsError(o.seatsUsed, o.TotalSeats(p))
	}
	o.seatsUsed++
	o.updatedAt = time.Now().UTC()
	return nil
}

// ReleaseSeat decrements seatsUsed, floored at zero. The floor is defensive;
// it never triggers when the seat invariant held.
func (o *Organization) ReleaseSeat() {
	if o.seatsUsed > 0 {
		o.seatsUsed--
	}
	o.updatedAt = time.Now().UTC()
}

// AddExtraSeats records count purchased overage seats.
func (o *Organization) AddExtraSeats(count int) error {
	if count <= 0 {
		return ErrInvalidSeatCount
	}
	o.extraSeatsPurchased += count
	o.updatedAt = time.Now().UTC()
	return nil
}

// ChangePlan replaces the organization plan. Purchased overage is
// plan-specific and resets to zero; a target plan whose included seats do not
// cover the current headcount is rejected.
func (o *Organization) ChangePlan(newPlan *plan.Plan) error {
	if o.planID == nil {
		return ErrNoPlan
	}
	if newPlan == nil {
		return plan.ErrUnknownPlan
	}
	if !newPlan.IsOrgPlan() {
		return plan.ErrNotOrgPlan
	}
	if *o.planID == newPlan.ID() {
		return ErrAlreadyOnPlan
	}
	if newPlan.IncludedSeats() < o.seatsUsed {
		return NewInsufficientSeatsError(newPlan.IncludedSeats(), o.seatsUsed)
	}

	planID := newPlan.ID()
	o.planID = &planID
	o.extraSeatsPurchased = 0
	o.updatedAt = time.Now().UTC()
	return nil
}
