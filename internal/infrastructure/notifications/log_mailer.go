package notifications

import (
	"context"

	"supportforge/internal/domain/entities"
	"supportforge/internal/logger"
	"supportforge/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

// LogMailer is the EMAIL_MOCK notifier for local runs: it logs what would
// have been sent and always succeeds.
type LogMailer struct {
	log zerolog.Logger
}

var _ interfaces.INotificationGateway = (*LogMailer)(nil)

func NewLogMailer() *LogMailer {
	return &LogMailer{log: logger.WithComponent("notifications.mock")}
}

func (m *LogMailer) SendInvoiceCreated(_ context.Context, inv entities.Invoice, client entities.Client) error {
	m.log.Info().
		Str("to", client.Email).
		Str("number", inv.Number).
		Str("amount", inv.Amount.StringFixed(2)).
		Msg("mock invoice created email")
	return nil
}

func (m *LogMailer) SendInvoiceStatusChanged(_ context.Context, inv entities.Invoice, client entities.Client, oldStatus, newStatus entities.InvoiceStatus) error {
	m.log.Info().
		Str("to", client.Email).
		Str("number", inv.Number).
		Str("old_status", string(oldStatus)).
		Str("new_status", string(newStatus)).
		Msg("mock invoice status changed email")
	return nil
}
