package postgres

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (client_id, rental_id, amount_paise, method, paid_on, reference, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, p.ClientID, p.RentalID, p.AmountPaise, p.Method, p.PaidOn, p.Reference).Scan(&p.ID)
	return wrapErr("payments.create", err)
}

// ListByClient returns the client's payments. A zero since means unbounded
// history; otherwise only payments on or after since are included.
func (r *paymentRepository) ListByClient(ctx context.Context, clientID int32, since time.Time) ([]domain.Payment, error) {
	query := `SELECT id, client_id, rental_id, amount_paise, method, paid_on, COALESCE(reference, ''), created_on
	          FROM payments WHERE client_id = $1`
	args := []interface{}{clientID}
	if !since.IsZero() {
		query += " AND paid_on >= $2"
		args = append(args, since)
	}
	query += " ORDER BY paid_on DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("payments.list_by_client", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.ClientID, &p.RentalID, &p.AmountPaise, &p.Method, &p.PaidOn, &p.Reference, &p.CreatedOn); err != nil {
			return nil, wrapErr("payments.scan", err)
		}
		payments = append(payments, p)
	}
	return payments, wrapErr("payments.rows", rows.Err())
}

func (r *paymentRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Payment, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM payments`).Scan(&count); err != nil {
		return nil, 0, wrapErr("payments.count", err)
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, client_id, rental_id, amount_paise, method, paid_on, COALESCE(reference, ''), created_on
	          FROM payments ORDER BY paid_on DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, wrapErr("payments.list", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.ClientID, &p.RentalID, &p.AmountPaise, &p.Method, &p.PaidOn, &p.Reference, &p.CreatedOn); err != nil {
			return nil, 0, wrapErr("payments.scan", err)
		}
		payments = append(payments, p)
	}
	return payments, count, wrapErr("payments.rows", rows.Err())
}
