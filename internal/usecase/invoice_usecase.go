package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"supportforge/internal/domain/entities"
	"supportforge/internal/logger"
	"supportforge/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrValidation       = errors.New("invalid invoice input")
	ErrClientNotFound   = errors.New("client not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrInvalidStatus    = errors.New("invalid invoice status")
	ErrInvoiceCancelled = errors.New("invoice is cancelled")
	ErrNumberExhausted  = errors.New("invoice number generation exhausted")
)

//go:generate mockgen -source=invoice_usecase.go -destination=../adapter/http/handlers/mocks/invoice_usecase_mock.go -package=mocks

// CreateInvoiceInput is the command for invoice creation. Items are supplied
// atomically with the invoice; zero-item creation is rejected.
type CreateInvoiceInput struct {
	ClientID string
	DueDate  time.Time
	Items    []entities.InvoiceItem
	Notify   bool
}

// ListInvoicesInput narrows and paginates invoice listings. Status is matched
// case-insensitively against the recognized status values.
type ListInvoicesInput struct {
	Status   string
	ClientID string
	Limit    int32
	Cursor   string
}

// InvoiceResult pairs the mutated invoice with the outcome of the best-effort
// client notification. NotificationSent is false both when notification was
// not requested and when delivery failed.
type InvoiceResult struct {
	Invoice          entities.Invoice
	NotificationSent bool
}

// IInvoiceUseCase is the invoice lifecycle manager: creation with unique
// number generation, status transitions with the paid-date invariant, full
// line-item replacement with amount recomputation, and derived read views.

type IInvoiceUseCase interface {
	Create(ctx context.Context, in CreateInvoiceInput) (InvoiceResult, error)
	SetStatus(ctx context.Context, id, status string, paidDate *time.Time) (InvoiceResult, error)
	ReplaceItems(ctx context.Context, id string, items []entities.InvoiceItem) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByNumber(ctx context.Context, number string) (entities.Invoice, error)
	List(ctx context.Context, in ListInvoicesInput) (entities.InvoicePage, error)
	TotalByStatus(ctx context.Context, status string) (decimal.Decimal, error)
}

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

type InvoiceUseCase struct {
	repo     interfaces.IInvoiceRepository
	clients  interfaces.IClientRepository
	notifier interfaces.INotificationGateway
	log      zerolog.Logger

	// numberSuffix yields the random 4-digit invoice number suffix.
	// Overridden in tests to force collisions.
	numberSuffix func() int
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(repo interfaces.IInvoiceRepository, clients interfaces.IClientRepository, notifier interfaces.INotificationGateway) *InvoiceUseCase {
	return &InvoiceUseCase{
		repo:         repo,
		clients:      clients,
		notifier:     notifier,
		log:          logger.WithComponent("invoice.usecase"),
		numberSuffix: randomNumberSuffix,
	}
}

func (u *InvoiceUseCase) Create(ctx context.Context, in CreateInvoiceInput) (InvoiceResult, error) {
	in.ClientID = strings.TrimSpace(in.ClientID)
	if in.ClientID == "" {
		return InvoiceResult{}, fmt.Errorf("%w: client_id is required", ErrValidation)
	}
	if in.DueDate.IsZero() {
		return InvoiceResult{}, fmt.Errorf("%w: due_date is required", ErrValidation)
	}
	items, amount, err := normalizeItems(in.Items)
	if err != nil {
		return InvoiceResult{}, err
	}

	client, err := u.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return InvoiceResult{}, err
	}
	if client.ID == "" {
		return InvoiceResult{}, ErrClientNotFound
	}

	now := time.Now().UTC()
	inv := entities.Invoice{
		ID:        uuid.NewString(),
		ClientID:  client.ID,
		Amount:    amount,
		Status:    entities.InvoiceStatusPending,
		DueDate:   in.DueDate.UTC(),
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := u.createWithUniqueNumber(ctx, inv)
	if err != nil {
		return InvoiceResult{}, err
	}
	u.log.Info().
		Str("invoice_id", created.ID).
		Str("number", created.Number).
		Str("client_id", created.ClientID).
		Str("amount", created.Amount.String()).
		Msg("invoice created")

	res := InvoiceResult{Invoice: created}
	if in.Notify {
		res.NotificationSent = u.notifyCreated(ctx, created, client)
	}
	return res, nil
}

func (u *InvoiceUseCase) SetStatus(ctx context.Context, id, status string, paidDate *time.Time) (InvoiceResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return InvoiceResult{}, fmt.Errorf("%w: invoice id is required", ErrValidation)
	}
	target, ok := entities.ParseInvoiceStatus(status)
	if !ok {
		return InvoiceResult{}, ErrInvalidStatus
	}

	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return InvoiceResult{}, err
	}
	if current.ID == "" {
		return InvoiceResult{}, ErrInvoiceNotFound
	}

	if current.Status == entities.InvoiceStatusCancelled {
		if target == entities.InvoiceStatusCancelled {
			return InvoiceResult{Invoice: current}, nil
		}
		return InvoiceResult{}, ErrInvoiceCancelled
	}

	// Invariant: status == paid iff paid date is set.
	var newPaid *time.Time
	if target == entities.InvoiceStatusPaid {
		if current.Status == entities.InvoiceStatusPaid {
			// Idempotent: the original paid date is preserved.
			return InvoiceResult{Invoice: current}, nil
		}
		when := time.Now().UTC()
		if paidDate != nil {
			when = paidDate.UTC()
		}
		newPaid = &when
	}

	updated, err := u.repo.UpdateStatus(ctx, id, target, newPaid)
	if err != nil {
		return InvoiceResult{}, err
	}
	if updated.ID == "" {
		return InvoiceResult{}, ErrInvoiceNotFound
	}
	u.log.Info().
		Str("invoice_id", updated.ID).
		Str("old_status", string(current.Status)).
		Str("new_status", string(updated.Status)).
		Msg("invoice status updated")

	res := InvoiceResult{Invoice: updated}
	if updated.Status != current.Status {
		res.NotificationSent = u.notifyStatusChanged(ctx, updated, current.Status)
	}
	return res, nil
}

func (u *InvoiceUseCase) ReplaceItems(ctx context.Context, id string, items []entities.InvoiceItem) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, fmt.Errorf("%w: invoice id is required", ErrValidation)
	}
	normalized, amount, err := normalizeItems(items)
	if err != nil {
		return entities.Invoice{}, err
	}

	updated, err := u.repo.ReplaceItems(ctx, id, normalized, amount)
	if err != nil {
		return entities.Invoice{}, err
	}
	if updated.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	u.log.Info().
		Str("invoice_id", updated.ID).
		Int("items", len(normalized)).
		Str("amount", amount.String()).
		Msg("invoice items replaced")
	return updated, nil
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, fmt.Errorf("%w: invoice id is required", ErrValidation)
	}
	inv, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (u *InvoiceUseCase) GetByNumber(ctx context.Context, number string) (entities.Invoice, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return entities.Invoice{}, fmt.Errorf("%w: invoice number is required", ErrValidation)
	}
	inv, err := u.repo.GetByNumber(ctx, number)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (u *InvoiceUseCase) List(ctx context.Context, in ListInvoicesInput) (entities.InvoicePage, error) {
	filter := entities.InvoiceFilter{
		ClientID: strings.TrimSpace(in.ClientID),
		Cursor:   strings.TrimSpace(in.Cursor),
		Limit:    in.Limit,
	}
	if raw := strings.TrimSpace(in.Status); raw != "" {
		status, ok := entities.ParseInvoiceStatus(raw)
		if !ok {
			return entities.InvoicePage{}, ErrInvalidStatus
		}
		filter.Status = &status
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return u.repo.List(ctx, filter)
}

func (u *InvoiceUseCase) TotalByStatus(ctx context.Context, status string) (decimal.Decimal, error) {
	parsed, ok := entities.ParseInvoiceStatus(status)
	if !ok {
		return decimal.Zero, ErrInvalidStatus
	}
	return u.repo.SumAmountByStatus(ctx, parsed)
}

// normalizeItems validates and trims a line-item set and computes the invoice
// amount as the sum of line totals.
func normalizeItems(items []entities.InvoiceItem) ([]entities.InvoiceItem, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, fmt.Errorf("%w: invoice requires at least one line item", ErrValidation)
	}
	out := make([]entities.InvoiceItem, 0, len(items))
	total := decimal.Zero
	for i, it := range items {
		it.Description = strings.TrimSpace(it.Description)
		if it.Description == "" {
			return nil, decimal.Zero, fmt.Errorf("%w: item %d: description is required", ErrValidation, i)
		}
		if it.Quantity < 1 {
			return nil, decimal.Zero, fmt.Errorf("%w: item %d: quantity must be at least 1", ErrValidation, i)
		}
		if it.UnitPrice.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("%w: item %d: unit price cannot be negative", ErrValidation, i)
		}
		total = total.Add(it.LineTotal())
		out = append(out, it)
	}
	return out, total, nil
}

func (u *InvoiceUseCase) notifyCreated(ctx context.Context, inv entities.Invoice, client entities.Client) bool {
	if u.notifier == nil {
		return false
	}
	if err := u.notifier.SendInvoiceCreated(ctx, inv, client); err != nil {
		u.log.Warn().Err(err).Str("invoice_id", inv.ID).Msg("invoice created notification failed")
		return false
	}
	return true
}

func (u *InvoiceUseCase) notifyStatusChanged(ctx context.Context, inv entities.Invoice, oldStatus entities.InvoiceStatus) bool {
	if u.notifier == nil {
		return false
	}
	client, err := u.clients.GetByID(ctx, inv.ClientID)
	if err != nil || client.ID == "" {
		u.log.Warn().Err(err).Str("invoice_id", inv.ID).Str("client_id", inv.ClientID).Msg("status change notification skipped, client unavailable")
		return false
	}
	if err := u.notifier.SendInvoiceStatusChanged(ctx, inv, client, oldStatus, inv.Status); err != nil {
		u.log.Warn().Err(err).Str("invoice_id", inv.ID).Msg("status change notification failed")
		return false
	}
	return true
}
