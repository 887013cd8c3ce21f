package subscription

import (
	"fmt"
	"time"

	"github.com/fitmo-inc/fitmo/internal/domain/plan"
)

// PaidPeriodDays is the length of a paid subscription window started without
// an explicit billing cycle.
const PaidPeriodDays = 30

// TrainerSubscription is the aggregate tracking a single trainer's plan,
// trial state and active status. A trainer has at most one subscription and
// belongs to at most one organization at a time.
type TrainerSubscription struct {
	id                uint
	sid               string
	trainerID         uint
	organizationID    *uint
	planID            *uint
	isTrial           bool
	trialStart        *time.Time
	trialEnd          *time.Time
	trialUsed         bool
	subscriptionStart *time.Time
	subscriptionEnd   *time.Time
	isActive          bool
	autoRenew         bool
	createdAt         time.Time
	updatedAt         time.Time
}

// NewTrainerSubscription creates a bare subscription record for a trainer.
// A bare record carries no plan; it exists so organization membership can be
// attached before the trainer ever picks a plan themselves.
func NewTrainerSubscription(trainerID uint) (*TrainerSubscription, error) {
	if trainerID == 0 {
		return nil, fmt.Errorf("trainer ID is required")
	}

	now := time.Now().UTC()
	return &TrainerSubscription{
		trainerID: trainerID,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructTrainerSubscription reconstructs a subscription from persistence.
func ReconstructTrainerSubscription(
	id uint,
	sid string,
	trainerID uint,
	organizationID, planID *uint,
	isTrial bool,
	trialStart, trialEnd *time.Time,
	trialUsed bool,
	subscriptionStart, subscriptionEnd *time.Time,
	isActive, autoRenew bool,
	createdAt, updatedAt time.Time,
) (*TrainerSubscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if trainerID == 0 {
		return nil, fmt.Errorf("trainer ID is required")
	}

	return &TrainerSubscription{
		id:                id,
		sid:               sid,
		trainerID:         trainerID,
		organizationID:    organizationID,
		planID:            planID,
		isTrial:           isTrial,
		trialStart:        trialStart,
		trialEnd:          trialEnd,
		trialUsed:         trialUsed,
		subscriptionStart: subscriptionStart,
		subscriptionEnd:   subscriptionEnd,
		isActive:          isActive,
		autoRenew:         autoRenew,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (s *TrainerSubscription) ID() uint                      { return s.id }
func (s *TrainerSubscription) SID() string                   { return s.sid }
func (s *TrainerSubscription) TrainerID() uint               { return s.trainerID }
func (s *TrainerSubscription) OrganizationID() *uint         { return s.organizationID }
func (s *TrainerSubscription) PlanID() *uint                 { return s.planID }
func (s *TrainerSubscription) IsTrial() bool                 { return s.isTrial }
func (s *TrainerSubscription) TrialStart() *time.Time        { return s.trialStart }
func (s *TrainerSubscription) TrialEnd() *time.Time          { return s.trialEnd }
func (s *TrainerSubscription) TrialUsed() bool               { return s.trialUsed }
func (s *TrainerSubscription) SubscriptionStart() *time.Time { return s.subscriptionStart }
func (s *TrainerSubscription) SubscriptionEnd() *time.Time   { return s.subscriptionEnd }
func (s *TrainerSubscription) IsActive() bool                { return s.isActive }
func (s *TrainerSubscription) AutoRenew() bool               { return s.autoRenew }
func (s *TrainerSubscription) CreatedAt() time.Time          { return s.createdAt }
func (s *TrainerSubscription) UpdatedAt() time.Time          { return s.updatedAt }

// SetID sets the subscription ID (only for persistence layer use)
func (s *TrainerSubscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// SetSID sets the short ID (only for persistence layer use)
func (s *TrainerSubscription) SetSID(sid string) {
	if s.sid == "" {
		s.sid = sid
	}
}

// StartTrial starts a trial window [now, now+trialDays] on the given plan.
// A trainer may use a free trial at most once, ever.
func (s *TrainerSubscription) StartTrial(p *plan.Plan, now time.Time) error {
	if p == nil {
		return plan.ErrUnknownPlan
	}
	if !p.IsTrialAvailable() {
		return ErrTrialNotAvailable
	}
	if s.trialUsed {
		return ErrTrialAlreadyUsed
	}

	end := now.Add(time.Duration(p.TrialDays()) * 24 * time.Hour)
	planID := p.ID()

	s.planID = &planID
	s.isTrial = true
	s.trialStart = &now
	s.trialEnd = &end
	s.trialUsed = true
	s.isActive = true
	s.updatedAt = now
	return nil
}

// StartPaid starts a paid window [now, now+PaidPeriodDays] on the given plan.
func (s *TrainerSubscription) StartPaid(p *plan.Plan, now time.Time) error {
	if p == nil {
		return plan.ErrUnknownPlan
	}

	end := now.Add(PaidPeriodDays * 24 * time.Hour)
	planID := p.ID()

	s.planID = &planID
	s.isTrial = false
	s.subscriptionStart = &now
	s.subscriptionEnd = &end
	s.isActive = true
	s.updatedAt = now
	return nil
}

// ChangePlan swaps the plan reference in place. No proration is applied here;
// proration is an explicit separate computation the caller may opt into.
func (s *TrainerSubscription) ChangePlan(newPlanID uint) error {
	if newPlanID == 0 {
		return fmt.Errorf("plan ID is required")
	}
	if s.planID != nil && *s.planID == newPlanID {
		return ErrAlreadyOnPlan
	}
	s.planID = &newPlanID
	s.updatedAt = time.Now().UTC()
	return nil
}

// RenewUntil extends the paid window to end, reactivating the subscription.
// A trial converts to paid on first renewal.
func (s *TrainerSubscription) RenewUntil(end time.Time) {
	now := time.Now().UTC()
	if s.subscriptionStart == nil {
		s.subscriptionStart = &now
	}
	s.subscriptionEnd = &end
	s.isTrial = false
	s.isActive = true
	s.updatedAt = now
}

// Cancel deactivates the subscription without touching period end dates.
// Data remains for historical commission lookups.
func (s *TrainerSubscription) Cancel() {
	s.isActive = false
	s.autoRenew = false
	s.updatedAt = time.Now().UTC()
}

// AttachOrganization links the trainer to an organization and inherits the
// organization's plan.
func (s *TrainerSubscription) AttachOrganization(orgID, orgPlanID uint) error {
	if orgID == 0 {
		return fmt.Errorf("organization ID is required")
	}
	if s.organizationID != nil {
		if *s.organizationID == orgID {
			return ErrAlreadyInOrganization
		}
		return ErrAlreadyInOtherOrganization
	}

	s.organizationID = &orgID
	s.planID = &orgPlanID
	s.isActive = true
	s.updatedAt = time.Now().UTC()
	return nil
}

// DetachOrganization clears the organization link. The plan reference is kept
// so historical commission lookups still resolve.
func (s *TrainerSubscription) DetachOrganization() {
	s.organizationID = nil
	s.updatedAt = time.Now().UTC()
}

// IsMemberOf reports whether the subscription is linked to the given
// organization.
func (s *TrainerSubscription) IsMemberOf(orgID uint) bool {
	return s.organizationID != nil && *s.organizationID == orgID
}

// IsSubscriptionActive reports whether the subscription confers plan benefits
// at the given instant: the trial window if trialing, the paid window
// otherwise. A cancelled subscription confers nothing.
func (s *TrainerSubscription) IsSubscriptionActive(now time.Time) bool {
	if !s.isActive || s.planID == nil {
		return false
	}
	// Organization members inherit the organization's plan for as long as
	// they hold a seat; the organization carries the billing windows.
	if s.organizationID != nil {
		return true
	}
	if s.isTrial {
		return s.trialEnd != nil && now.Before(*s.trialEnd)
	}
	return s.subscriptionEnd != nil && now.Before(*s.subscriptionEnd)
}
