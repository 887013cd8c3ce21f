package billing

import "context"

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *BillingSubscription) error
	GetByID(ctx context.Context, id uint) (*BillingSubscription, error)
	GetByProviderSubscriptionID(ctx context.Context, providerSubID string) (*BillingSubscription, error)
	GetByTrainerSubscriptionID(ctx context.Context, trainerSubID uint) (*BillingSubscription, error)
	GetByOrganizationID(ctx context.Context, orgID uint) (*BillingSubscription, error)
	Update(ctx context.Context, sub *BillingSubscription) error
}

type InvoiceRepository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id uint) (*Invoice, error)
	GetBySID(ctx context.Context, sid string) (*Invoice, error)
	GetByProviderInvoiceID(ctx context.Context, providerInvoiceID string) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error

	ListByTrainerSubscriptionID(ctx context.Context, trainerSubID uint) ([]*Invoice, error)
	ListByOrganizationID(ctx context.Context, orgID uint) ([]*Invoice, error)
}
