package interfaces

import (
	"context"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/payment_gateway_mock.go -package=mocks

// ProviderPayment is the subset of the provider's payment resource consumed
// by the billing service. ExternalReference carries the invoice id the
// checkout flow attached when the payment was created.
type ProviderPayment struct {
	ID                string
	Status            string
	ExternalReference string
	TransactionAmount decimal.Decimal
}

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// The billing service only reads payments back when a webhook event arrives;
// payment creation happens on the provider's hosted checkout.
type IPaymentGateway interface {
	GetPayment(ctx context.Context, providerPaymentID string) (ProviderPayment, error)
}
