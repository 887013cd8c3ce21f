// Package constants defines shared constant values used across layers.
package constants

// Runtime environments.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Context keys set by middleware and read by handlers.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)

// Table names keep persistence models and raw queries consistent.
const (
	TableSubscriptionPlans     = "subscription_plans"
	TableTrainerSubscriptions  = "trainer_subscriptions"
	TableOrganizations         = "organizations"
	TableOrganizationInvites   = "organization_invitations"
	TableSeatOverages          = "seat_overages"
	TableBillingSubscriptions  = "billing_subscriptions"
	TableInvoices              = "invoices"
	TableBookings              = "bookings"
)

// DefaultCommissionRate is the platform commission (percent) applied when a
// trainer has no active subscription.
const DefaultCommissionRate = 20
