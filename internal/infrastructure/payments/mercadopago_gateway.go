package payments

import (
	"context"
	"errors"
	"strconv"

	"supportforge/internal/logger"
	"supportforge/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrInvalidProviderPaymentID      = errors.New("invalid provider payment id")
)

// MercadoPagoGateway resolves provider payments for webhook processing.
type MercadoPagoGateway struct {
	client payment.Client
	log    zerolog.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &MercadoPagoGateway{
		client: payment.NewClient(cfg),
		log:    logger.WithComponent("payments.mercadopago"),
	}, nil
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, providerPaymentID string) (interfaces.ProviderPayment, error) {
	// Mercado Pago payment ids are numeric; webhook payloads carry them as strings.
	id, err := strconv.Atoi(providerPaymentID)
	if err != nil {
		return interfaces.ProviderPayment{}, ErrInvalidProviderPaymentID
	}

	resp, err := g.client.Get(ctx, id)
	if err != nil {
		g.log.Warn().Err(err).Str("payment_id", providerPaymentID).Msg("provider payment lookup failed")
		return interfaces.ProviderPayment{}, err
	}

	g.log.Info().
		Str("payment_id", providerPaymentID).
		Str("provider_status", resp.Status).
		Str("external_reference", resp.ExternalReference).
		Msg("provider payment resolved")

	return interfaces.ProviderPayment{
		ID:                providerPaymentID,
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
		TransactionAmount: decimal.NewFromFloat(resp.TransactionAmount),
	}, nil
}
