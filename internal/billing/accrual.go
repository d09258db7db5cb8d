package billing

import (
	"time"

	"equiprent-backend/internal/domain"
)

// LineAccrual is the accrued amount for one rental line item.
type LineAccrual struct {
	RentalItemID   int32
	CategoryID     int32
	Quantity       int32
	DailyRatePaise int64
	Days           int32
	AmountPaise    int64
}

// Accrual is the full cost breakdown for a rental at a point in time.
type Accrual struct {
	RentalID   int32
	Start      time.Time
	End        time.Time
	Days       int32
	Lines      []LineAccrual
	TotalPaise int64
}

// RentalDays counts billable days between two dates, both ends inclusive,
// with a floor of one day so a same-day return still bills a full day.
func RentalDays(start, end time.Time) int32 {
	start = truncateDay(start)
	end = truncateDay(end)
	days := int32(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// Accrue computes the billable amount for a rental. For a closed rental the
// period ends at the actual return date; otherwise asOf substitutes, so the
// result grows day by day until the rental closes. Pure function, no hidden
// state; the result is a live estimate, distinct from the frozen
// Rental.TotalAmountPaise captured at invoicing.
func Accrue(rental *domain.Rental, asOf time.Time) Accrual {
	end := asOf
	if rental.ActualReturnDate != nil {
		end = *rental.ActualReturnDate
	}
	days := RentalDays(rental.RentalDate, end)

	acc := Accrual{
		RentalID: rental.ID,
		Start:    truncateDay(rental.RentalDate),
		End:      truncateDay(end),
		Days:     days,
		Lines:    make([]LineAccrual, 0, len(rental.Items)),
	}
	for _, it := range rental.Items {
		amount := int64(it.Quantity) * it.DailyRatePaise * int64(days)
		acc.Lines = append(acc.Lines, LineAccrual{
			RentalItemID:   it.ID,
			CategoryID:     it.CategoryID,
			Quantity:       it.Quantity,
			DailyRatePaise: it.DailyRatePaise,
			Days:           days,
			AmountPaise:    amount,
		})
		acc.TotalPaise += amount
	}
	return acc
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
