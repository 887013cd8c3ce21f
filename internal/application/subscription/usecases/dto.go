package usecases

import (
	"time"

	"github.com/fitmo-inc/fitmo/internal/domain/plan"
	"github.com/fitmo-inc/fitmo/internal/domain/subscription"
)

// SubscriptionDTO is the API view of a trainer subscription. The effective
// commission rate already accounts for expiry and organization coverage.
type SubscriptionDTO struct {
	SID                     string     `json:"id"`
	TrainerID               uint       `json:"trainer_id"`
	PlanKey                 string     `json:"plan_key,omitempty"`
	PlanName                string     `json:"plan_name,omitempty"`
	OrganizationSID         string     `json:"organization_id,omitempty"`
	IsTrial                 bool       `json:"is_trial"`
	TrialEnd                *time.Time `json:"trial_end,omitempty"`
	TrialUsed               bool       `json:"trial_used"`
	SubscriptionStart       *time.Time `json:"subscription_start,omitempty"`
	SubscriptionEnd         *time.Time `json:"subscription_end,omitempty"`
	IsActive                bool       `json:"is_active"`
	IsCurrentlyActive       bool       `json:"is_currently_active"`
	AutoRenew               bool       `json:"auto_renew"`
	EffectiveCommissionRate int        `json:"effective_commission_rate"`
}

// ToSubscriptionDTO maps a subscription and its resolved plan (nil when the
// trainer has none) to the API representation.
func ToSubscriptionDTO(sub *subscription.TrainerSubscription, p *plan.Plan, now time.Time) *SubscriptionDTO {
	policy := subscription.NewCommissionPolicy(subscription.DefaultCommissionRate)

	dto := &SubscriptionDTO{
		SID:                     sub.SID(),
		TrainerID:               sub.TrainerID(),
		IsTrial:                 sub.IsTrial(),
		TrialEnd:                sub.TrialEnd(),
		TrialUsed:               sub.TrialUsed(),
		SubscriptionStart:       sub.SubscriptionStart(),
		SubscriptionEnd:         sub.SubscriptionEnd(),
		IsActive:                sub.IsActive(),
		IsCurrentlyActive:       sub.IsSubscriptionActive(now),
		AutoRenew:               sub.AutoRenew(),
		EffectiveCommissionRate: policy.EffectiveRate(sub, p, now),
	}
	if p != nil {
		dto.PlanKey = string(p.Key())
		dto.PlanName = p.Name()
	}
	return dto
}
