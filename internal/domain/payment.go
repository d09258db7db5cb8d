package domain

import "time"

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
)

type Payment struct {
	ID          int32         `json:"id"`
	ClientID    int32         `json:"client_id"`
	RentalID    *int32        `json:"rental_id,omitempty"`
	AmountPaise int64         `json:"amount_paise"`
	Method      PaymentMethod `json:"method"`
	PaidOn      time.Time     `json:"paid_on"`
	Reference   string        `json:"reference,omitempty"`
	CreatedOn   time.Time     `json:"created_on"`
}
