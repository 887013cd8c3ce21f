package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoiceNumber(t *testing.T) {
	now := time.Date(2026, 3, 1, 14, 30, 45, 0, time.UTC)

	assert.Equal(t, "INV-20260301143045-sub_abcd", GenerateInvoiceNumber(now, "sub_abcd"))
	// Long subject SIDs are truncated to keep the number compact.
	assert.Equal(t, "INV-20260301143045-org_abcd", GenerateInvoiceNumber(now, "org_abcdefghij"))
}

func newTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	inv, err := NewInvoice(
		4,
		uintPtr(5), nil,
		"INV-20260301000000-sub_abcd",
		29900,
		now, now.Add(30*24*time.Hour),
		now,
	)
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	inv := newTestInvoice(t)

	assert.Equal(t, InvoiceStatusDraft, inv.Status())
	assert.Equal(t, int64(29900), inv.Subtotal())
	assert.Equal(t, int64(0), inv.TaxAmount())
	assert.Equal(t, int64(29900), inv.TotalAmount())
	assert.Equal(t, inv.IssueDate().Add(DueDays*24*time.Hour), inv.DueDate())
}

func TestNewInvoice_Validation(t *testing.T) {
	now := time.Now().UTC()

	_, err := NewInvoice(0, uintPtr(5), nil, "INV-1", 100, now, now, now)
	assert.Error(t, err)

	_, err = NewInvoice(4, uintPtr(5), nil, "", 100, now, now, now)
	assert.Error(t, err)

	_, err = NewInvoice(4, uintPtr(5), nil, "INV-1", -1, now, now, now)
	assert.Error(t, err)
}

func TestInvoice_SetTax(t *testing.T) {
	inv := newTestInvoice(t)

	require.NoError(t, inv.SetTax(5980))
	assert.Equal(t, int64(5980), inv.TaxAmount())
	assert.Equal(t, int64(35880), inv.TotalAmount())

	assert.Error(t, inv.SetTax(-1))
}

func TestInvoice_StatusTransitions(t *testing.T) {
	inv := newTestInvoice(t)

	inv.MarkSent()
	assert.Equal(t, InvoiceStatusSent, inv.Status())

	inv.MarkPastDue()
	assert.Equal(t, InvoiceStatusPastDue, inv.Status())

	paidAt := time.Now().UTC()
	inv.MarkPaid(paidAt)
	assert.Equal(t, InvoiceStatusPaid, inv.Status())
	require.NotNil(t, inv.PaidDate())
	assert.Equal(t, paidAt, *inv.PaidDate())

	// A late failure event must not unmark a recorded payment.
	inv.MarkPastDue()
	assert.Equal(t, InvoiceStatusPaid, inv.Status())
}

func TestInvoice_SetProviderInvoiceID(t *testing.T) {
	inv := newTestInvoice(t)

	inv.SetProviderInvoiceID("in_123")
	require.NotNil(t, inv.ProviderInvoiceID())
	assert.Equal(t, "in_123", *inv.ProviderInvoiceID())
}
