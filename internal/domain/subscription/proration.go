package subscription

import "time"

// ProrationDenominatorDays is the fixed month length used for upgrade
// proration. Billing months are normalized to 30 days.
const ProrationDenominatorDays = 30

// RemainingDays returns the whole days left in the current period, clamped
// to [0, ProrationDenominatorDays].
func RemainingDays(periodEnd *time.Time, now time.Time) int {
	if periodEnd == nil || !now.Before(*periodEnd) {
		return 0
	}
	days := int(periodEnd.Sub(now).Hours() / 24)
	if days > ProrationDenominatorDays {
		return ProrationDenominatorDays
	}
	return days
}

// ProratedUpgradeAmount returns the amount due now, in minor units, when
// moving from oldMonthly to newMonthly with the given days remaining in the
// paid period. The charge covers the remaining days plus one fresh cycle on
// the new plan, minus a credit for the unused days already paid on the old
// plan, floored at zero. With no days remaining the new plan's full monthly
// price is due.
func ProratedUpgradeAmount(oldMonthly, newMonthly int64, remainingDays int) int64 {
	if remainingDays <= 0 {
		return newMonthly
	}
	credit := oldMonthly * int64(remainingDays) / ProrationDenominatorDays
	newCharge := newMonthly * int64(remainingDays+ProrationDenominatorDays) / ProrationDenominatorDays
	if newCharge < credit {
		return 0
	}
	return newCharge - credit
}
