package repository

import (
	"context"
	"time"

	"equiprent-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int32) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Client, int32, error)
	Search(ctx context.Context, query string, page, pageSize int32) ([]domain.Client, int32, error)
}

type StockCategoryRepository interface {
	Create(ctx context.Context, cat *domain.StockCategory) error
	GetByID(ctx context.Context, id int32) (*domain.StockCategory, error)
	GetByIDs(ctx context.Context, ids []int32) (map[int32]domain.StockCategory, error)
	Update(ctx context.Context, cat *domain.StockCategory) error
	List(ctx context.Context) ([]domain.StockCategory, error)
}

// StockItemRepository is the quantity ledger. All counter mutations are
// atomic in-database arithmetic guarded by the schema's non-negativity
// checks; callers never write a client-cached snapshot back.
type StockItemRepository interface {
	Create(ctx context.Context, item *domain.StockItem) error
	GetByCategory(ctx context.Context, categoryID int32) (*domain.StockItem, error)
	List(ctx context.Context) ([]domain.StockItem, error)
	// Issue moves qty from available to rented; fails with
	// InsufficientStockError when available < qty.
	Issue(ctx context.Context, categoryID, qty int32) error
	// ReturnGood moves qty from rented back to available.
	ReturnGood(ctx context.Context, categoryID, qty int32) error
	// ReturnDamaged moves qty from rented to damaged; damaged stock never
	// returns to available and total never decreases.
	ReturnDamaged(ctx context.Context, categoryID, qty int32) error
	// AddStock raises both total and available, for administrative intake.
	AddStock(ctx context.Context, categoryID, qty int32) error
}

type RentalRepository interface {
	// CreateWithItems inserts the rental, its line items and the stock
	// issuance for every line inside one transaction.
	CreateWithItems(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	List(ctx context.Context, clientID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListOpenByClient(ctx context.Context, clientID int32) ([]domain.Rental, error)
	// Cancel flips the rental to CANCELLED and releases every issued unit
	// back to available inside one transaction, so a failed release leaves
	// the rental open and retryable. A version miss returns ErrConcurrency.
	Cancel(ctx context.Context, rental *domain.Rental) error
	// FreezeTotalAmount stores the invoiced amount snapshot.
	FreezeTotalAmount(ctx context.Context, rentalID int32, totalPaise int64) error
}

type ReturnRepository interface {
	// Reconcile persists a return batch as one transaction: the return
	// header and items, the per-line returned_quantity counters, the
	// rental's status/actual_return_date/version, and the stock moves.
	// Any failure rolls the whole batch back.
	Reconcile(ctx context.Context, ret *domain.Return, rental *domain.Rental, moves []domain.StockMove) error
	ListByRental(ctx context.Context, rentalID int32) ([]domain.Return, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByClient(ctx context.Context, clientID int32, since time.Time) ([]domain.Payment, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Payment, int32, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id int32) (*domain.Invoice, error)
	ListByClient(ctx context.Context, clientID int32) ([]domain.Invoice, error)
	UpdateStatus(ctx context.Context, id int32, status domain.InvoiceStatus, paidOn *time.Time) error
}
