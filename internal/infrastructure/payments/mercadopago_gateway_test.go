package payments

import (
	"context"
	"errors"
	"testing"
)

func TestNewMercadoPagoGateway_MissingToken(t *testing.T) {
	if _, err := NewMercadoPagoGateway(""); !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
}

func TestMercadoPagoGateway_GetPayment_InvalidID(t *testing.T) {
	g := &MercadoPagoGateway{}
	if _, err := g.GetPayment(context.Background(), "not-a-number"); !errors.Is(err, ErrInvalidProviderPaymentID) {
		t.Fatalf("expected ErrInvalidProviderPaymentID, got %v", err)
	}
}
