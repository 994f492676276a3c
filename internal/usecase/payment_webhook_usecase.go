package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"supportforge/internal/domain/entities"
	"supportforge/internal/logger"
	"supportforge/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

var ErrPaymentGatewayUnavailable = errors.New("payment gateway not configured")

//go:generate mockgen -source=payment_webhook_usecase.go -destination=../adapter/http/handlers/mocks/payment_webhook_usecase_mock.go -package=mocks

const providerStatusApproved = "approved"

// WebhookResult reports what a provider payment event did. Applied is true
// when the referenced invoice ended up paid; ignored events (unapproved
// status, missing invoice reference) are acknowledged with Applied false so
// the provider stops retrying.
type WebhookResult struct {
	InvoiceID string
	Applied   bool
}

// IPaymentWebhookUseCase turns provider payment events into invoice
// transitions: an approved payment whose external reference names an invoice
// moves that invoice to paid through the lifecycle manager.
type IPaymentWebhookUseCase interface {
	Process(ctx context.Context, providerPaymentID string) (WebhookResult, error)
}

type PaymentWebhookUseCase struct {
	gateway  interfaces.IPaymentGateway
	invoices IInvoiceUseCase
	log      zerolog.Logger
}

var _ IPaymentWebhookUseCase = (*PaymentWebhookUseCase)(nil)

func NewPaymentWebhookUseCase(gateway interfaces.IPaymentGateway, invoices IInvoiceUseCase) *PaymentWebhookUseCase {
	return &PaymentWebhookUseCase{
		gateway:  gateway,
		invoices: invoices,
		log:      logger.WithComponent("payment.webhook"),
	}
}

func (u *PaymentWebhookUseCase) Process(ctx context.Context, providerPaymentID string) (WebhookResult, error) {
	providerPaymentID = strings.TrimSpace(providerPaymentID)
	if providerPaymentID == "" {
		return WebhookResult{}, fmt.Errorf("%w: payment id is required", ErrValidation)
	}
	if u.gateway == nil {
		return WebhookResult{}, ErrPaymentGatewayUnavailable
	}

	payment, err := u.gateway.GetPayment(ctx, providerPaymentID)
	if err != nil {
		return WebhookResult{}, err
	}
	if payment.Status != providerStatusApproved {
		u.log.Info().
			Str("payment_id", providerPaymentID).
			Str("provider_status", payment.Status).
			Msg("ignoring non-approved payment event")
		return WebhookResult{}, nil
	}

	invoiceID := strings.TrimSpace(payment.ExternalReference)
	if invoiceID == "" {
		u.log.Warn().
			Str("payment_id", providerPaymentID).
			Msg("approved payment carries no invoice reference")
		return WebhookResult{}, nil
	}

	res, err := u.invoices.SetStatus(ctx, invoiceID, string(entities.InvoiceStatusPaid), nil)
	if err != nil {
		if errors.Is(err, ErrInvoiceCancelled) {
			// Anomaly: money arrived against a cancelled invoice. Acknowledge
			// the event and leave reconciliation to the operator.
			u.log.Warn().
				Str("payment_id", providerPaymentID).
				Str("invoice_id", invoiceID).
				Msg("approved payment for cancelled invoice")
			return WebhookResult{InvoiceID: invoiceID}, nil
		}
		return WebhookResult{}, err
	}

	u.log.Info().
		Str("payment_id", providerPaymentID).
		Str("invoice_id", res.Invoice.ID).
		Str("amount", payment.TransactionAmount.String()).
		Msg("invoice paid via provider payment")
	return WebhookResult{InvoiceID: res.Invoice.ID, Applied: true}, nil
}
