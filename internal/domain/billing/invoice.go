package billing

import (
	"fmt"
	"time"
)

// InvoiceStatus is the invoice lifecycle state. Invoices are never deleted,
// only status-transitioned.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusPastDue   InvoiceStatus = "past_due"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusRefunded  InvoiceStatus = "refunded"
)

var validInvoiceStatuses = map[InvoiceStatus]bool{
	InvoiceStatusDraft:     true,
	InvoiceStatusSent:      true,
	InvoiceStatusPaid:      true,
	InvoiceStatusPastDue:   true,
	InvoiceStatusCancelled: true,
	InvoiceStatusRefunded:  true,
}

// DueDays is the default payment term for manually created invoices.
const DueDays = 30

// GenerateInvoiceNumber builds an invoice number from the issue timestamp and
// the billing subject's short ID. Timestamp plus subject gives
// deterministic-enough uniqueness; the storage layer still enforces a
// uniqueness constraint on the column.
func GenerateInvoiceNumber(now time.Time, subjectSID string) string {
	prefix := subjectSID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("INV-%s-%s", now.UTC().Format("20060102150405"), prefix)
}

// Invoice is a billing record for a subscription period. Amounts are in
// minor currency units.
type Invoice struct {
	id                    uint
	sid                   string
	billingSubscriptionID uint
	trainerSubscriptionID *uint
	organizationID        *uint
	invoiceNumber         string
	providerInvoiceID     *string
	subtotal              int64
	taxAmount             int64
	totalAmount           int64
	status                InvoiceStatus
	issueDate             time.Time
	dueDate               time.Time
	paidDate              *time.Time
	periodStart           time.Time
	periodEnd             time.Time
	createdAt             time.Time
	updatedAt             time.Time
}

// NewInvoice creates a draft invoice for a billing period, due in DueDays.
// Tax is zero until configured; total equals subtotal.
func NewInvoice(
	billingSubscriptionID uint,
	trainerSubscriptionID, organizationID *uint,
	invoiceNumber string,
	amount int64,
	periodStart, periodEnd time.Time,
	now time.Time,
) (*Invoice, error) {
	if billingSubscriptionID == 0 {
		return nil, fmt.Errorf("billing subscription ID is required")
	}
	if invoiceNumber == "" {
		return nil, fmt.Errorf("invoice number is required")
	}
	if amount < 0 {
		return nil, fmt.Errorf("invoice amount cannot be negative")
	}

	return &Invoice{
		billingSubscriptionID: billingSubscriptionID,
		trainerSubscriptionID: trainerSubscriptionID,
		organizationID:        organizationID,
		invoiceNumber:         invoiceNumber,
		subtotal:              amount,
		taxAmount:             0,
		totalAmount:           amount,
		status:                InvoiceStatusDraft,
		issueDate:             now,
		dueDate:               now.Add(DueDays * 24 * time.Hour),
		periodStart:           periodStart,
		periodEnd:             periodEnd,
		createdAt:             now,
		updatedAt:             now,
	}, nil
}

// ReconstructInvoice reconstructs an invoice from persistence.
func ReconstructInvoice(
	id uint,
	sid string,
	billingSubscriptionID uint,
	trainerSubscriptionID, organizationID *uint,
	invoiceNumber string,
	providerInvoiceID *string,
	subtotal, taxAmount, totalAmount int64,
	status InvoiceStatus,
	issueDate, dueDate time.Time,
	paidDate *time.Time,
	periodStart, periodEnd time.Time,
	createdAt, updatedAt time.Time,
) (*Invoice, error) {
	if id == 0 {
		return nil, fmt.Errorf("invoice ID cannot be zero")
	}
	if !validInvoiceStatuses[status] {
		return nil, fmt.Errorf("invalid invoice status: %s", status)
	}

	return &Invoice{
		id:                    id,
		sid:                   sid,
		billingSubscriptionID: billingSubscriptionID,
		trainerSubscriptionID: trainerSubscriptionID,
		organizationID:        organizationID,
		invoiceNumber:         invoiceNumber,
		providerInvoiceID:     providerInvoiceID,
		subtotal:              subtotal,
		taxAmount:             taxAmount,
		totalAmount:           totalAmount,
		status:                status,
		issueDate:             issueDate,
		dueDate:               dueDate,
		paidDate:              paidDate,
		periodStart:           periodStart,
		periodEnd:             periodEnd,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}, nil
}

func (i *Invoice) ID() uint                     { return i.id }
func (i *Invoice) SID() string                  { return i.sid }
func (i *Invoice) BillingSubscriptionID() uint  { return i.billingSubscriptionID }
func (i *Invoice) TrainerSubscriptionID() *uint { return i.trainerSubscriptionID }
func (i *Invoice) OrganizationID() *uint        { return i.organizationID }
func (i *Invoice) InvoiceNumber() string        { return i.invoiceNumber }
func (i *Invoice) ProviderInvoiceID() *string   { return i.providerInvoiceID }
func (i *Invoice) Subtotal() int64              { return i.subtotal }
func (i *Invoice) TaxAmount() int64             { return i.taxAmount }
func (i *Invoice) TotalAmount() int64           { return i.totalAmount }
func (i *Invoice) Status() InvoiceStatus        { return i.status }
func (i *Invoice) IssueDate() time.Time         { return i.issueDate }
func (i *Invoice) DueDate() time.Time           { return i.dueDate }
func (i *Invoice) PaidDate() *time.Time         { return i.paidDate }
func (i *Invoice) PeriodStart() time.Time       { return i.periodStart }
func (i *Invoice) PeriodEnd() time.Time         { return i.periodEnd }
func (i *Invoice) CreatedAt() time.Time         { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time         { return i.updatedAt }

// SetID sets the invoice ID (only for persistence layer use)
func (i *Invoice) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("invoice ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("invoice ID cannot be zero")
	}
	i.id = id
	return nil
}

// SetSID sets the short ID (only for persistence layer use)
func (i *Invoice) SetSID(sid string) {
	if i.sid == "" {
		i.sid = sid
	}
}

// SetProviderInvoiceID attaches the payment provider's invoice id, which
// deduplicates webhook-driven creation.
func (i *Invoice) SetProviderInvoiceID(providerID string) {
	i.providerInvoiceID = &providerID
	i.updatedAt = time.Now().UTC()
}

// SetTax sets the tax amount and recomputes the total.
func (i *Invoice) SetTax(tax int64) error {
	if tax < 0 {
		return fmt.Errorf("tax amount cannot be negative")
	}
	i.taxAmount = tax
	i.totalAmount = i.subtotal + tax
	i.updatedAt = time.Now().UTC()
	return nil
}

// MarkPaid transitions the invoice to paid at the given instant.
func (i *Invoice) MarkPaid(now time.Time) {
	i.status = InvoiceStatusPaid
	i.paidDate = &now
	i.updatedAt = now
}

// MarkPastDue flags an unpaid invoice as past due. Paid invoices are left
// alone; a late failure event must not unmark a recorded payment.
func (i *Invoice) MarkPastDue() {
	if i.status != InvoiceStatusPaid {
		i.status = InvoiceStatusPastDue
		i.updatedAt = time.Now().UTC()
	}
}

// MarkSent transitions a draft invoice to sent.
func (i *Invoice) MarkSent() {
	if i.status == InvoiceStatusDraft {
		i.status = InvoiceStatusSent
		i.updatedAt = time.Now().UTC()
	}
}
