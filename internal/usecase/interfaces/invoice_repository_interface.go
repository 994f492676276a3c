package interfaces

import (
	"context"
	"errors"
	"time"

	"supportforge/internal/domain/entities"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=invoice_repository_interface.go -destination=mocks/invoice_repository_mock.go -package=mocks

// ErrDuplicateInvoiceNumber is returned by Create when the storage-level
// uniqueness reservation for the invoice number is already taken. The caller
// regenerates the number and retries; the application never relies on a
// pre-insert lookup alone.
var ErrDuplicateInvoiceNumber = errors.New("invoice number already taken")

// IInvoiceRepository abstracts DynamoDB persistence for Invoice.
//
// Contract notes:
//   - Create writes the invoice (with embedded line items) and its number
//     reservation in a single transaction.
//   - UpdateStatus and ReplaceItems mutate by id; both return a zero-value
//     Invoice (empty ID) when the id does not resolve.
//   - ReplaceItems persists the full replacement item set together with the
//     recomputed amount; partial application is not possible.

type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByNumber(ctx context.Context, number string) (entities.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status entities.InvoiceStatus, paidDate *time.Time) (entities.Invoice, error)
	ReplaceItems(ctx context.Context, id string, items []entities.InvoiceItem, amount decimal.Decimal) (entities.Invoice, error)
	List(ctx context.Context, filter entities.InvoiceFilter) (entities.InvoicePage, error)
	SumAmountByStatus(ctx context.Context, status entities.InvoiceStatus) (decimal.Decimal, error)
}
