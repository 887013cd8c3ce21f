package billing

import "context"

// CheckoutParams describes a hosted checkout session to create with the
// payment provider. Amount is in minor currency units.
type CheckoutParams struct {
	CustomerEmail string
	SubjectSID    string
	PlanName      string
	Amount        int64
	Currency      string
	Cycle         Cycle
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the provider-side session the customer is redirected to.
type CheckoutSession struct {
	SessionID string
	URL       string
}

// PaymentGateway is the port to the payment provider. Implementations live
// in the infrastructure layer.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	CancelSubscription(ctx context.Context, providerSubscriptionID string) error
}
