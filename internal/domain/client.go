package domain

import "time"

type Client struct {
	ID         int32     `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email,omitempty"`
	Address    string    `json:"address,omitempty"`
	IDProofRef string    `json:"id_proof_ref,omitempty"` // opaque capture-widget reference, stored verbatim
	CreatedOn  time.Time `json:"created_on"`
}

// ClientBalance is the read-only ledger projection for one client.
// Outstanding covers ACTIVE and PARTIALLY_RETURNED rentals only.
type ClientBalance struct {
	ClientID         int32 `json:"client_id"`
	OutstandingPaise int64 `json:"outstanding_paise"`
	PaidPaise        int64 `json:"paid_paise"`
	BalancePaise     int64 `json:"balance_paise"` // positive = due, negative or zero = credit/settled
}
