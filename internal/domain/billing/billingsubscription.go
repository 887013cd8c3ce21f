package billing

import (
	"fmt"
	"time"
)

// Status is the internal billing subscription state.
type Status string

const (
	StatusTrial     Status = "trial"
	StatusActive    Status = "active"
	StatusPastDue   Status = "past_due"
	StatusCancelled Status = "cancelled"
	StatusEnded     Status = "ended"
	// StatusUnknown marks a provider status outside the known vocabulary.
	// Records in this state require manual reconciliation; they are
	// deliberately not treated as active.
	StatusUnknown Status = "unknown"
)

var validStatuses = map[Status]bool{
	StatusTrial:     true,
	StatusActive:    true,
	StatusPastDue:   true,
	StatusCancelled: true,
	StatusEnded:     true,
	StatusUnknown:   true,
}

// providerStatusMap translates the payment provider's status vocabulary onto
// internal states.
var providerStatusMap = map[string]Status{
	"active":   StatusActive,
	"past_due": StatusPastDue,
	"canceled": StatusCancelled,
	"cancelled": StatusCancelled,
	"trialing": StatusTrial,
}

// MapProviderStatus translates a provider status string. The second result
// reports whether the status was recognized; unrecognized statuses map to
// StatusUnknown rather than defaulting to active, so a provider-side
// cancellation can never be masked.
func MapProviderStatus(providerStatus string) (Status, bool) {
	if s, ok := providerStatusMap[providerStatus]; ok {
		return s, true
	}
	return StatusUnknown, false
}

// Cycle is the billing period cadence.
type Cycle string

const (
	CycleMonthly Cycle = "monthly"
	CycleAnnual  Cycle = "annual"
)

// BillingSubscription links an internal subscription subject (exactly one of
// trainer subscription or organization) to the payment provider's records.
type BillingSubscription struct {
	id                    uint
	sid                   string
	trainerSubscriptionID *uint
	organizationID        *uint
	planID                uint
	providerCustomerID    string
	providerSubscriptionID string
	cycle                 Cycle
	status                Status
	currentPeriodStart    time.Time
	currentPeriodEnd      time.Time
	failedPaymentCount    int
	cancelledAt           *time.Time
	createdAt             time.Time
	updatedAt             time.Time
}

// NewBillingSubscription creates a billing subscription for exactly one of
// trainerSubscriptionID or organizationID.
func NewBillingSubscription(
	trainerSubscriptionID, organizationID *uint,
	planID uint,
	providerCustomerID, providerSubscriptionID string,
	cycle Cycle,
	status Status,
	periodStart, periodEnd time.Time,
) (*BillingSubscription, error) {
	if (trainerSubscriptionID == nil) == (organizationID == nil) {
		return nil, fmt.Errorf("exactly one of trainer subscription or organization must be set")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if providerSubscriptionID == "" {
		return nil, fmt.Errorf("provider subscription ID is required")
	}
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid billing status: %s", status)
	}
	if cycle != CycleMonthly && cycle != CycleAnnual {
		return nil, fmt.Errorf("invalid billing cycle: %s", cycle)
	}

	now := time.Now().UTC()
	return &BillingSubscription{
		trainerSubscriptionID:  trainerSubscriptionID,
		organizationID:         organizationID,
		planID:                 planID,
		providerCustomerID:     providerCustomerID,
		providerSubscriptionID: providerSubscriptionID,
		cycle:                  cycle,
		status:                 status,
		currentPeriodStart:     periodStart,
		currentPeriodEnd:       periodEnd,
		createdAt:              now,
		updatedAt:              now,
	}, nil
}

// ReconstructBillingSubscription reconstructs from persistence.
func ReconstructBillingSubscription(
	id uint,
	sid string,
	trainerSubscriptionID, organizationID *uint,
	planID uint,
	providerCustomerID, providerSubscriptionID string,
	cycle Cycle,
	status Status,
	currentPeriodStart, currentPeriodEnd time.Time,
	failedPaymentCount int,
	cancelledAt *time.Time,
	createdAt, updatedAt time.Time,
) (*BillingSubscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("billing subscription ID cannot be zero")
	}
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid billing status: %s", status)
	}

	return &BillingSubscription{
		id:                     id,
		sid:                    sid,
		trainerSubscriptionID:  trainerSubscriptionID,
		organizationID:         organizationID,
		planID:                 planID,
		providerCustomerID:     providerCustomerID,
		providerSubscriptionID: providerSubscriptionID,
		cycle:                  cycle,
		status:                 status,
		currentPeriodStart:     currentPeriodStart,
		currentPeriodEnd:       currentPeriodEnd,
		failedPaymentCount:     failedPaymentCount,
		cancelledAt:            cancelledAt,
		createdAt:              createdAt,
		updatedAt:              updatedAt,
	}, nil
}

func (b *BillingSubscription) ID() uint                       { return b.id }
func (b *BillingSubscription) SID() string                    { return b.sid }
func (b *BillingSubscription) TrainerSubscriptionID() *uint   { return b.trainerSubscriptionID }
func (b *BillingSubscription) OrganizationID() *uint          { return b.organizationID }
func (b *BillingSubscription) PlanID() uint                   { return b.planID }
func (b *BillingSubscription) ProviderCustomerID() string     { return b.providerCustomerID }
func (b *BillingSubscription) ProviderSubscriptionID() string { return b.providerSubscriptionID }
func (b *BillingSubscription) Cycle() Cycle                   { return b.cycle }
func (b *BillingSubscription) Status() Status                 { return b.status }
func (b *BillingSubscription) CurrentPeriodStart() time.Time  { return b.currentPeriodStart }
func (b *BillingSubscription) CurrentPeriodEnd() time.Time    { return b.currentPeriodEnd }
func (b *BillingSubscription) FailedPaymentCount() int        { return b.failedPaymentCount }
func (b *BillingSubscription) CancelledAt() *time.Time        { return b.cancelledAt }
func (b *BillingSubscription) CreatedAt() time.Time           { return b.createdAt }
func (b *BillingSubscription) UpdatedAt() time.Time           { return b.updatedAt }

// SetID sets the billing subscription ID (only for persistence layer use)
func (b *BillingSubscription) SetID(id uint) error {
	if b.id != 0 {
		return fmt.Errorf("billing subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("billing subscription ID cannot be zero")
	}
	b.id = id
	return nil
}

// SetSID sets the short ID (only for persistence layer use)
func (b *BillingSubscription) SetSID(sid string) {
	if b.sid == "" {
		b.sid = sid
	}
}

// ApplyProviderStatus maps a provider status onto the internal state and
// updates the current period end. The bool result reports whether the
// provider status was recognized.
func (b *BillingSubscription) ApplyProviderStatus(providerStatus string, periodEnd time.Time) bool {
	status, known := MapProviderStatus(providerStatus)
	b.status = status
	if !periodEnd.IsZero() {
		b.currentPeriodEnd = periodEnd
	}
	b.updatedAt = time.Now().UTC()
	return known
}

// RecordPaymentFailure increments the failed-payment counter and forces the
// subscription past due regardless of prior state.
func (b *BillingSubscription) RecordPaymentFailure() {
	b.failedPaymentCount++
	b.status = StatusPastDue
	b.updatedAt = time.Now().UTC()
}

// RecordPaymentSuccess resets the failed-payment counter and forces the
// subscription active.
func (b *BillingSubscription) RecordPaymentSuccess() {
	b.failedPaymentCount = 0
	b.status = StatusActive
	b.updatedAt = time.Now().UTC()
}

// MarkCancelled forces the subscription cancelled and stamps cancelledAt.
func (b *BillingSubscription) MarkCancelled(now time.Time) {
	b.status = StatusCancelled
	b.cancelledAt = &now
	b.updatedAt = now
}
