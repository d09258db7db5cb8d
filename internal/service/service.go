package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"equiprent-backend/internal/billing"
	"equiprent-backend/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, *domain.User, error) // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type ClientService interface {
	CreateClient(ctx context.Context, client *domain.Client) error
	GetClient(ctx context.Context, id int32) (*domain.Client, error)
	UpdateClient(ctx context.Context, client *domain.Client) error
	ListClients(ctx context.Context, query string, page, pageSize int32) ([]domain.Client, int32, error)
}

type StockService interface {
	CreateCategory(ctx context.Context, cat *domain.StockCategory, initialQuantity int32) error
	GetCategory(ctx context.Context, id int32) (*domain.StockCategory, error)
	UpdateCategory(ctx context.Context, cat *domain.StockCategory) error
	ListCategories(ctx context.Context) ([]domain.StockCategory, error)
	ListStockLevels(ctx context.Context) ([]domain.StockItem, error)
	AddStock(ctx context.Context, categoryID, qty int32) error
}

// RentalItemRequest is one requested line of a new rental.
type RentalItemRequest struct {
	CategoryID int32 `json:"category_id"`
	Quantity   int32 `json:"quantity"`
}

type RentalService interface {
	// CreateRental validates availability, freezes each category's current
	// daily rate into the line items and issues stock, all-or-nothing.
	CreateRental(ctx context.Context, clientID int32, rentalDate time.Time, expectedReturn *time.Time, items []RentalItemRequest, notes string) (*domain.Rental, error)
	// GetRental returns the rental with its live accrual evaluated at asOf.
	GetRental(ctx context.Context, rentalID int32, asOf time.Time) (*domain.Rental, *billing.Accrual, error)
	ListRentals(ctx context.Context, clientID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	// CancelRental is the administrative terminal transition; it only
	// applies before any unit has been returned.
	CancelRental(ctx context.Context, rentalID int32, reason string) (*domain.Rental, error)
}

type ReturnService interface {
	// ProcessReturn applies one return batch as a single logical unit.
	ProcessReturn(ctx context.Context, rentalID int32, returnDate time.Time, submissions []domain.ReturnSubmission, notes string) (*domain.Return, *domain.Rental, error)
	ListReturns(ctx context.Context, rentalID int32) ([]domain.Return, error)
}

type LedgerService interface {
	// ClientStatement derives outstanding/paid/balance for a client. A zero
	// since bounds nothing; otherwise payments before since are excluded.
	ClientStatement(ctx context.Context, clientID int32, since time.Time) (*domain.ClientBalance, error)
}

type PaymentService interface {
	RecordPayment(ctx context.Context, payment *domain.Payment) error
	ListPayments(ctx context.Context, page, pageSize int32) ([]domain.Payment, int32, error)
}

type InvoiceService interface {
	// GenerateInvoice composes the invoice for a rental, freezes the total
	// onto the rental and persists the invoice.
	GenerateInvoice(ctx context.Context, rentalID int32, asOf time.Time, taxRate decimal.Decimal) (*domain.Invoice, *domain.InvoiceDraft, error)
	GetInvoice(ctx context.Context, id int32) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, clientID int32) ([]domain.Invoice, error)
	MarkPaid(ctx context.Context, id int32, paidOn time.Time) error
	Cancel(ctx context.Context, id int32) error
}

type EmailService interface {
	SendReturnReceipt(ctx context.Context, toEmail, clientName string, ret *domain.Return) error
	SendInvoiceNotice(ctx context.Context, toEmail, clientName string, inv *domain.Invoice) error
	SendOverdueInvoiceReminder(ctx context.Context, toEmail, clientName string, inv *domain.Invoice) error
	SendReturnReminder(ctx context.Context, toEmail, clientName string, rentalID int32, duePaise int64) error
}
