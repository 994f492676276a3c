package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"supportforge/internal/domain/entities"
	"supportforge/internal/usecase/interfaces"
)

// Invoice numbers follow INV-YYYYMM-NNNN with a random zero-padded 4-digit
// suffix. Uniqueness is enforced by the storage layer (conditional reservation
// write); a duplicate triggers regeneration with a fresh suffix, capped at
// numberMaxAttempts before the creation fails loudly.
const (
	invoiceNumberPrefix = "INV"
	numberSuffixSpace   = 10000
	numberMaxAttempts   = 10
)

func randomNumberSuffix() int {
	return rand.IntN(numberSuffixSpace)
}

func formatInvoiceNumber(when time.Time, suffix int) string {
	return fmt.Sprintf("%s-%s-%04d", invoiceNumberPrefix, when.Format("200601"), suffix)
}

func (u *InvoiceUseCase) createWithUniqueNumber(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	for attempt := 1; attempt <= numberMaxAttempts; attempt++ {
		inv.Number = formatInvoiceNumber(inv.CreatedAt, u.numberSuffix())
		created, err := u.repo.Create(ctx, inv)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, interfaces.ErrDuplicateInvoiceNumber) {
			return entities.Invoice{}, err
		}
		u.log.Warn().
			Str("number", inv.Number).
			Int("attempt", attempt).
			Msg("invoice number collision, regenerating")
	}
	return entities.Invoice{}, ErrNumberExhausted
}
