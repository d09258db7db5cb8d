package billing

import "equiprent-backend/internal/domain"

// ClientBalance derives the per-client ledger projection from the client's
// rentals and payments. Outstanding sums the stored total_amount of rentals
// still open (ACTIVE or PARTIALLY_RETURNED); paid sums every payment the
// caller passed in, so the history window is the caller's choice. Read-only
// and idempotent: identical inputs always yield an identical balance.
func ClientBalance(clientID int32, rentals []domain.Rental, payments []domain.Payment) domain.ClientBalance {
	bal := domain.ClientBalance{ClientID: clientID}
	for _, rt := range rentals {
		if rt.Status == domain.RentalStatusActive || rt.Status == domain.RentalStatusPartiallyReturned {
			bal.OutstandingPaise += rt.TotalAmountPaise
		}
	}
	for _, p := range payments {
		bal.PaidPaise += p.AmountPaise
	}
	bal.BalancePaise = bal.OutstandingPaise - bal.PaidPaise
	return bal
}
