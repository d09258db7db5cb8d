package billing

import (
	"testing"
	"time"

	"equiprent-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComposeInvoice(t *testing.T) {
	categories := map[int32]domain.StockCategory{
		5: {ID: 5, Name: "Steel Prop 3m"},
	}

	t.Run("Applies tax and names lines from categories", func(t *testing.T) {
		returned := date(2025, 3, 14)
		rental := &domain.Rental{
			ID:               1,
			RentalDate:       date(2025, 3, 10),
			ActualReturnDate: &returned,
			Items: []domain.RentalItem{
				{ID: 11, CategoryID: 5, Quantity: 2, DailyRatePaise: 2500},
			},
		}

		draft := ComposeInvoice(rental, categories, time.Now(), decimal.NewFromInt(18))
		assert.Equal(t, int64(25000), draft.SubtotalPaise)
		assert.Equal(t, int64(4500), draft.TaxPaise)
		assert.Equal(t, int64(29500), draft.TotalPaise)
		assert.Equal(t, "Steel Prop 3m", draft.Lines[0].Description)
		assert.Equal(t, int32(5), draft.Lines[0].Days)
	})

	t.Run("Tax fractions round to whole paise", func(t *testing.T) {
		returned := date(2025, 3, 10)
		rental := &domain.Rental{
			RentalDate:       date(2025, 3, 10),
			ActualReturnDate: &returned,
			Items: []domain.RentalItem{
				{CategoryID: 9, Quantity: 1, DailyRatePaise: 333},
			},
		}

		// 333 * 18% = 59.94 -> 60
		draft := ComposeInvoice(rental, nil, time.Now(), decimal.NewFromInt(18))
		assert.Equal(t, int64(60), draft.TaxPaise)
		assert.Equal(t, int64(393), draft.TotalPaise)
		assert.Equal(t, "Category 9", draft.Lines[0].Description)
	})

	t.Run("Zero tax rate leaves total equal to subtotal", func(t *testing.T) {
		returned := date(2025, 3, 12)
		rental := &domain.Rental{
			RentalDate:       date(2025, 3, 10),
			ActualReturnDate: &returned,
			Items: []domain.RentalItem{
				{CategoryID: 5, Quantity: 2, DailyRatePaise: 1000},
			},
		}

		draft := ComposeInvoice(rental, categories, time.Now(), decimal.Zero)
		assert.Equal(t, int64(0), draft.TaxPaise)
		assert.Equal(t, draft.SubtotalPaise, draft.TotalPaise)
	})
}
