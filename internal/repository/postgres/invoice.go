package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type invoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	query := `INSERT INTO invoices (number, client_id, rental_id, period_start, period_end, subtotal_paise, tax_rate, tax_paise, total_paise, status, issued_on, due_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, inv.Number, inv.ClientID, inv.RentalID,
		inv.PeriodStart, inv.PeriodEnd, inv.SubtotalPaise, inv.TaxRate.String(),
		inv.TaxPaise, inv.TotalPaise, inv.Status, inv.IssuedOn, inv.DueOn).Scan(&inv.ID)
	return wrapErr("invoices.create", err)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	var taxRate string
	query := `SELECT id, number, client_id, rental_id, period_start, period_end, subtotal_paise, tax_rate, tax_paise, total_paise, status, issued_on, due_on, paid_on
	          FROM invoices WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&inv.ID, &inv.Number, &inv.ClientID, &inv.RentalID, &inv.PeriodStart, &inv.PeriodEnd,
		&inv.SubtotalPaise, &taxRate, &inv.TaxPaise, &inv.TotalPaise, &inv.Status,
		&inv.IssuedOn, &inv.DueOn, &inv.PaidOn)
	if err != nil {
		return nil, wrapErr("invoices.get", err)
	}
	inv.TaxRate, err = decimal.NewFromString(taxRate)
	if err != nil {
		return nil, wrapErr("invoices.tax_rate", err)
	}
	return inv, nil
}

func (r *invoiceRepository) ListByClient(ctx context.Context, clientID int32) ([]domain.Invoice, error) {
	query := `SELECT id, number, client_id, rental_id, period_start, period_end, subtotal_paise, tax_rate, tax_paise, total_paise, status, issued_on, due_on, paid_on
	          FROM invoices WHERE client_id = $1 ORDER BY issued_on DESC`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, wrapErr("invoices.list", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		var taxRate string
		if err := rows.Scan(&inv.ID, &inv.Number, &inv.ClientID, &inv.RentalID, &inv.PeriodStart, &inv.PeriodEnd,
			&inv.SubtotalPaise, &taxRate, &inv.TaxPaise, &inv.TotalPaise, &inv.Status,
			&inv.IssuedOn, &inv.DueOn, &inv.PaidOn); err != nil {
			return nil, wrapErr("invoices.scan", err)
		}
		if inv.TaxRate, err = decimal.NewFromString(taxRate); err != nil {
			return nil, wrapErr("invoices.tax_rate", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, wrapErr("invoices.rows", rows.Err())
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id int32, status domain.InvoiceStatus, paidOn *time.Time) error {
	query := `UPDATE invoices SET status=$1, paid_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, status, paidOn, id)
	if err != nil {
		return wrapErr("invoices.update_status", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
