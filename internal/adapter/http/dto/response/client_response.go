package response

import (
	"time"

	"supportforge/internal/domain/entities"
)

type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromClient(c entities.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Company:   c.Company,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
}

func FromClients(clients []entities.Client) ClientListResponse {
	out := ClientListResponse{Clients: make([]ClientResponse, 0, len(clients))}
	for _, c := range clients {
		out.Clients = append(out.Clients, FromClient(c))
	}
	return out
}

// PaymentWebhookResponse acknowledges a provider payment event.
type PaymentWebhookResponse struct {
	InvoiceID string `json:"invoice_id,omitempty"`
	Applied   bool   `json:"applied"`
}
