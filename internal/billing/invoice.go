package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"equiprent-backend/internal/domain"
)

// ComposeInvoice turns a rental's accrual into an invoice draft with tax
// applied. taxRate is a percentage (18 means 18%). Tax is computed with
// decimal arithmetic and rounded half-up to whole paise; integer math on
// the percentage would drop fractions on every line.
func ComposeInvoice(rental *domain.Rental, categories map[int32]domain.StockCategory, asOf time.Time, taxRate decimal.Decimal) domain.InvoiceDraft {
	acc := Accrue(rental, asOf)

	draft := domain.InvoiceDraft{
		Lines:         make([]domain.InvoiceLine, 0, len(acc.Lines)),
		PeriodStart:   acc.Start,
		PeriodEnd:     acc.End,
		SubtotalPaise: acc.TotalPaise,
		TaxRate:       taxRate,
	}
	for _, line := range acc.Lines {
		desc := fmt.Sprintf("Category %d", line.CategoryID)
		if cat, ok := categories[line.CategoryID]; ok {
			desc = cat.Name
		}
		draft.Lines = append(draft.Lines, domain.InvoiceLine{
			Description: desc,
			Quantity:    line.Quantity,
			Days:        line.Days,
			RatePaise:   line.DailyRatePaise,
			AmountPaise: line.AmountPaise,
		})
	}

	tax := decimal.NewFromInt(draft.SubtotalPaise).
		Mul(taxRate).
		Div(decimal.NewFromInt(100)).
		Round(0)
	draft.TaxPaise = tax.IntPart()
	draft.TotalPaise = draft.SubtotalPaise + draft.TaxPaise
	return draft
}
