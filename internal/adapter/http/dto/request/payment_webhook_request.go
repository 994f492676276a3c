package request

import "strings"

// PaymentWebhookRequest is the Mercado Pago webhook notification body. Newer
// notifications carry the payment id under data.id; older "topic" style
// notifications put it at the top level.
type PaymentWebhookRequest struct {
	Action string `json:"action"`
	Type   string `json:"type"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
	ID string `json:"id"`
}

func (r PaymentWebhookRequest) ResolvePaymentID() string {
	if v := strings.TrimSpace(r.Data.ID); v != "" {
		return v
	}
	return strings.TrimSpace(r.ID)
}
