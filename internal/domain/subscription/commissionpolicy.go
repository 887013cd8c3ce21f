package subscription

import (
	"time"

	"github.com/fitmo-inc/fitmo/internal/domain/plan"
)

// DefaultCommissionRate is the platform commission (percent) applied to
// trainers without an active subscription.
const DefaultCommissionRate = 20

// CommissionPolicy resolves the effective commission rate for a trainer.
type CommissionPolicy struct {
	defaultRate int
}

// NewCommissionPolicy creates a policy with the given fallback rate. A rate
// outside [0, 100] falls back to DefaultCommissionRate.
func NewCommissionPolicy(defaultRate int) *CommissionPolicy {
	if defaultRate < 0 || defaultRate > 100 {
		defaultRate = DefaultCommissionRate
	}
	return &CommissionPolicy{defaultRate: defaultRate}
}

// EffectiveRate returns the plan's commission rate when the subscription is
// active at now, otherwise the default rate. Both sub and p may be nil.
func (cp *CommissionPolicy) EffectiveRate(sub *TrainerSubscription, p *plan.Plan, now time.Time) int {
	if sub == nil || p == nil {
		return cp.defaultRate
	}
	if !sub.IsSubscriptionActive(now) {
		return cp.defaultRate
	}
	return p.CommissionRate()
}

// DefaultRate returns the configured fallback rate.
func (cp *CommissionPolicy) DefaultRate() int {
	return cp.defaultRate
}
