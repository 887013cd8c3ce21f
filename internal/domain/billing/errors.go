package billing

import "errors"

var (
	ErrBillingSubscriptionNotFound = errors.New("billing subscription not found")
	ErrInvoiceNotFound             = errors.New("invoice not found")
	ErrInvoiceNumberExists         = errors.New("invoice number already exists")
	ErrUnknownEventType            = errors.New("unknown webhook event type")
	ErrMalformedEvent              = errors.New("malformed webhook event payload")
)
