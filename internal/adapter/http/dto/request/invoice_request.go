package request

import (
	"strings"
	"time"

	"supportforge/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one line of an invoice payload. UnitPrice accepts
// both JSON numbers and strings; zero prices are valid (bundled work).
type InvoiceItemRequest struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest is the POST /invoices payload.
type CreateInvoiceRequest struct {
	ClientID string               `json:"client_id" binding:"required"`
	DueDate  time.Time            `json:"due_date" binding:"required"`
	Items    []InvoiceItemRequest `json:"items"`
	Notify   bool                 `json:"notify"`
}

func (r CreateInvoiceRequest) ResolveClientID() string {
	return strings.TrimSpace(r.ClientID)
}

func (r CreateInvoiceRequest) ToItems() []entities.InvoiceItem {
	return toItems(r.Items)
}

// SetInvoiceStatusRequest is the PATCH /invoices/:id/status payload. PaidDate
// is honored only for transitions to paid.
type SetInvoiceStatusRequest struct {
	Status   string     `json:"status" binding:"required"`
	PaidDate *time.Time `json:"paid_date"`
}

// ReplaceInvoiceItemsRequest is the PUT /invoices/:id/items payload: the full
// replacement item set, never an incremental patch.
type ReplaceInvoiceItemsRequest struct {
	Items []InvoiceItemRequest `json:"items"`
}

func (r ReplaceInvoiceItemsRequest) ToItems() []entities.InvoiceItem {
	return toItems(r.Items)
}

func toItems(items []InvoiceItemRequest) []entities.InvoiceItem {
	out := make([]entities.InvoiceItem, 0, len(items))
	for _, it := range items {
		out = append(out, entities.InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}
