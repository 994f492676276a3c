package response

import (
	"time"

	"supportforge/internal/domain/entities"
)

// InvoiceItemResponse mirrors one invoice line. Monetary values are rendered
// as fixed two-decimal strings.
type InvoiceItemResponse struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

type InvoiceResponse struct {
	ID        string                `json:"id"`
	Number    string                `json:"number"`
	ClientID  string                `json:"client_id"`
	Amount    string                `json:"amount"`
	Status    string                `json:"status"`
	Overdue   bool                  `json:"overdue"`
	DueDate   time.Time             `json:"due_date"`
	PaidDate  *time.Time            `json:"paid_date,omitempty"`
	Items     []InvoiceItemResponse `json:"items"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`

	// NotificationSent is present on mutation responses only.
	NotificationSent *bool `json:"notification_sent,omitempty"`
}

// FromInvoice maps an invoice for read endpoints. The overdue flag is derived
// at response time and never written back.
func FromInvoice(inv entities.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, InvoiceItemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			LineTotal:   it.LineTotal().StringFixed(2),
		})
	}
	return InvoiceResponse{
		ID:        inv.ID,
		Number:    inv.Number,
		ClientID:  inv.ClientID,
		Amount:    inv.Amount.StringFixed(2),
		Status:    string(inv.Status),
		Overdue:   inv.IsOverdue(time.Now().UTC()),
		DueDate:   inv.DueDate,
		PaidDate:  inv.PaidDate,
		Items:     items,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

// FromInvoiceResult maps a mutation outcome, including the best-effort
// notification flag.
func FromInvoiceResult(inv entities.Invoice, notificationSent bool) InvoiceResponse {
	res := FromInvoice(inv)
	res.NotificationSent = &notificationSent
	return res
}

type InvoicePageResponse struct {
	Invoices   []InvoiceResponse `json:"invoices"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func FromInvoicePage(page entities.InvoicePage) InvoicePageResponse {
	invoices := make([]InvoiceResponse, 0, len(page.Invoices))
	for _, inv := range page.Invoices {
		invoices = append(invoices, FromInvoice(inv))
	}
	return InvoicePageResponse{Invoices: invoices, NextCursor: page.NextCursor}
}

// StatusTotalResponse is the aggregate view for GET /invoices/totals/:status.
type StatusTotalResponse struct {
	Status string `json:"status"`
	Total  string `json:"total"`
}
