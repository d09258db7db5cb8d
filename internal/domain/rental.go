package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive            RentalStatus = "ACTIVE"
	RentalStatusPartiallyReturned RentalStatus = "PARTIALLY_RETURNED"
	RentalStatusCompleted         RentalStatus = "COMPLETED"
	RentalStatusCancelled         RentalStatus = "CANCELLED"
)

type Rental struct {
	ID                 int32        `json:"id"`
	ClientID           int32        `json:"client_id"`
	RentalDate         time.Time    `json:"rental_date"`
	ExpectedReturnDate *time.Time   `json:"expected_return_date,omitempty"`
	ActualReturnDate   *time.Time   `json:"actual_return_date,omitempty"` // set only on the transition to COMPLETED
	Status             RentalStatus `json:"status"`
	// TotalAmountPaise is the frozen amount captured at invoice generation.
	// Zero until invoiced. The live estimate comes from billing.Accrue and
	// is never stored here.
	TotalAmountPaise int64        `json:"total_amount_paise"`
	Notes            string       `json:"notes,omitempty"`
	Version          int32        `json:"version"` // optimistic lock, bumped on every reconciliation
	Items            []RentalItem `json:"items,omitempty"`
	CreatedOn        time.Time    `json:"created_on"`
	UpdatedOn        time.Time    `json:"updated_on"`
}

type RentalItem struct {
	ID         int32 `json:"id"`
	RentalID   int32 `json:"rental_id"`
	CategoryID int32 `json:"category_id"`
	Quantity   int32 `json:"quantity"`
	// DailyRatePaise is frozen at issuance; later category rate edits do
	// not touch it.
	DailyRatePaise   int64 `json:"daily_rate_paise"`
	ReturnedQuantity int32 `json:"returned_quantity"`
}

// Pending is the quantity still out with the client.
func (ri RentalItem) Pending() int32 {
	return ri.Quantity - ri.ReturnedQuantity
}

// FullyReturned reports whether every issued unit of every line item has
// come back, in any condition.
func (r *Rental) FullyReturned() bool {
	for _, it := range r.Items {
		if it.ReturnedQuantity < it.Quantity {
			return false
		}
	}
	return true
}
