package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ClientRepository
	repository.StockCategoryRepository
	repository.StockItemRepository
	repository.RentalRepository
	repository.ReturnRepository
	repository.PaymentRepository
	repository.InvoiceRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		UserRepository:          NewUserRepository(db),
		ClientRepository:        NewClientRepository(db),
		StockCategoryRepository: NewStockCategoryRepository(db),
		StockItemRepository:     NewStockItemRepository(db),
		RentalRepository:        NewRentalRepository(db),
		ReturnRepository:        NewReturnRepository(db),
		PaymentRepository:       NewPaymentRepository(db),
		InvoiceRepository:       NewInvoiceRepository(db),
	}
}

const pqCheckViolation = "23514"

// wrapErr maps driver errors onto the domain taxonomy: missing rows become
// ErrNotFound, check-constraint violations on the stock counters surface the
// storage-level guard, everything else is a StoreError.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqCheckViolation {
		return domain.NewValidationError("storage", "constraint %s violated", pqErr.Constraint)
	}
	return domain.NewStoreError(op, err)
}
