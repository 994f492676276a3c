package interfaces

import (
	"context"

	"supportforge/internal/domain/entities"
)

//go:generate mockgen -source=notification_gateway_interface.go -destination=mocks/notification_gateway_mock.go -package=mocks

// INotificationGateway abstracts outbound client email (e.g. Amazon SES).
//
// Delivery is best-effort from the core's perspective: callers log failures
// and report them as a flag, they never roll back the invoice mutation.
type INotificationGateway interface {
	SendInvoiceCreated(ctx context.Context, inv entities.Invoice, client entities.Client) error
	SendInvoiceStatusChanged(ctx context.Context, inv entities.Invoice, client entities.Client, oldStatus, newStatus entities.InvoiceStatus) error
}
