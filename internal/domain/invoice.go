package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

type Invoice struct {
	ID            int32           `json:"id"`
	Number        string          `json:"number"`
	ClientID      int32           `json:"client_id"`
	RentalID      int32           `json:"rental_id"`
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	SubtotalPaise int64           `json:"subtotal_paise"`
	TaxRate       decimal.Decimal `json:"tax_rate"` // percent, e.g. 18 for 18% GST
	TaxPaise      int64           `json:"tax_paise"`
	TotalPaise    int64           `json:"total_paise"`
	Status        InvoiceStatus   `json:"status"`
	IssuedOn      time.Time       `json:"issued_on"`
	DueOn         time.Time       `json:"due_on"`
	PaidOn        *time.Time      `json:"paid_on,omitempty"`
}

// InvoiceLine is one rendered line of an invoice draft. The external PDF
// composer consumes these as-is.
type InvoiceLine struct {
	Description string `json:"description"`
	Quantity    int32  `json:"quantity"`
	Days        int32  `json:"days"`
	RatePaise   int64  `json:"rate_paise"`
	AmountPaise int64  `json:"amount_paise"`
}

// InvoiceDraft is the computed line-item/subtotal/tax/total structure
// before persistence.
type InvoiceDraft struct {
	Lines         []InvoiceLine   `json:"lines"`
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	SubtotalPaise int64           `json:"subtotal_paise"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxPaise      int64           `json:"tax_paise"`
	TotalPaise    int64           `json:"total_paise"`
}
