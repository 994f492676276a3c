package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the stored lifecycle state of an invoice.
//
// Domain notes:
//   - Every invoice starts as "pending", regardless of its due date.
//   - "overdue" can be set explicitly by an operator; the system never flips
//     stored status on its own. Past-due display state is derived via IsOverdue.
//   - "cancelled" is terminal.

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// ParseInvoiceStatus maps a raw string onto one of the recognized status
// values. Matching is case-insensitive; ok is false for anything else.
func ParseInvoiceStatus(raw string) (InvoiceStatus, bool) {
	switch InvoiceStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case InvoiceStatusPending:
		return InvoiceStatusPending, true
	case InvoiceStatusPaid:
		return InvoiceStatusPaid, true
	case InvoiceStatusOverdue:
		return InvoiceStatusOverdue, true
	case InvoiceStatusCancelled:
		return InvoiceStatusCancelled, true
	}
	return "", false
}

// InvoiceItem is a single billable line on an invoice.
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// LineTotal returns quantity x unit price for the line.
func (it InvoiceItem) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Invoice is the billing invoice persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (number-index): number
//   - line items are embedded in the invoice item, so invoice+items writes
//     are atomic by construction
//
// Monetary representation:
//   - Amount is the sum of all line totals at creation or last item edit.
//     It is persisted, not recomputed on read.
type Invoice struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	ClientID  string          `json:"client_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    InvoiceStatus   `json:"status"`
	DueDate   time.Time       `json:"due_date"`
	PaidDate  *time.Time      `json:"paid_date,omitempty"`
	Items     []InvoiceItem   `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsOverdue reports whether the invoice is past due for display and
// aggregation purposes. It is a pure derivation: only a pending invoice with
// a due date before now counts, and stored status is never touched.
func (i Invoice) IsOverdue(now time.Time) bool {
	return i.Status == InvoiceStatusPending && i.DueDate.Before(now)
}

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Status   *InvoiceStatus
	ClientID string
	Limit    int32
	Cursor   string
}

// InvoicePage is one page of an invoice listing. NextCursor is empty when
// there are no further pages.
type InvoicePage struct {
	Invoices   []Invoice `json:"invoices"`
	NextCursor string    `json:"next_cursor,omitempty"`
}
