package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

// CreateWithItems inserts the rental and its line items and issues stock
// for every line in one transaction. A failed availability guard on any
// line rolls the whole rental back.
func (r *rentalRepository) CreateWithItems(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("rentals.begin", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO rentals (client_id, rental_date, expected_return_date, status, total_amount_paise, notes, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, 0, $5, 1, NOW(), NOW()) RETURNING id, version`
	err = tx.QueryRowContext(ctx, query, rt.ClientID, rt.RentalDate, rt.ExpectedReturnDate, rt.Status, rt.Notes).Scan(&rt.ID, &rt.Version)
	if err != nil {
		return wrapErr("rentals.create", err)
	}

	itemQuery := `INSERT INTO rental_items (rental_id, category_id, quantity, daily_rate_paise, returned_quantity)
	              VALUES ($1, $2, $3, $4, 0) RETURNING id`
	for i := range rt.Items {
		it := &rt.Items[i]
		it.RentalID = rt.ID
		if err := tx.QueryRowContext(ctx, itemQuery, rt.ID, it.CategoryID, it.Quantity, it.DailyRatePaise).Scan(&it.ID); err != nil {
			return wrapErr("rental_items.create", err)
		}
		if err := issueTx(ctx, tx, it.CategoryID, it.Quantity); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("rentals.commit", err)
	}
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT id, client_id, rental_date, expected_return_date, actual_return_date, status, total_amount_paise, COALESCE(notes, ''), version, created_on, updated_on
	          FROM rentals WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rt.ID, &rt.ClientID, &rt.RentalDate, &rt.ExpectedReturnDate, &rt.ActualReturnDate,
		&rt.Status, &rt.TotalAmountPaise, &rt.Notes, &rt.Version, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, wrapErr("rentals.get", err)
	}

	items, err := r.loadItems(ctx, rt.ID)
	if err != nil {
		return nil, err
	}
	rt.Items = items
	return rt, nil
}

func (r *rentalRepository) loadItems(ctx context.Context, rentalID int32) ([]domain.RentalItem, error) {
	query := `SELECT id, rental_id, category_id, quantity, daily_rate_paise, returned_quantity
	          FROM rental_items WHERE rental_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, wrapErr("rental_items.list", err)
	}
	defer rows.Close()

	var items []domain.RentalItem
	for rows.Next() {
		var it domain.RentalItem
		if err := rows.Scan(&it.ID, &it.RentalID, &it.CategoryID, &it.Quantity, &it.DailyRatePaise, &it.ReturnedQuantity); err != nil {
			return nil, wrapErr("rental_items.scan", err)
		}
		items = append(items, it)
	}
	return items, wrapErr("rental_items.rows", rows.Err())
}

func (r *rentalRepository) List(ctx context.Context, clientID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	listSQL := `SELECT id, client_id, rental_date, expected_return_date, actual_return_date, status, total_amount_paise, COALESCE(notes, ''), version, created_on, updated_on
	            FROM rentals WHERE 1=1`
	var args []interface{}
	if clientID > 0 {
		args = append(args, clientID)
		listSQL += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		listSQL += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var count int32
	countSQL := "SELECT count(*) FROM (" + listSQL + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&count); err != nil {
		return nil, 0, wrapErr("rentals.count", err)
	}

	offset := (page - 1) * pageSize
	listSQL += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, wrapErr("rentals.list", err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.ClientID, &rt.RentalDate, &rt.ExpectedReturnDate, &rt.ActualReturnDate,
			&rt.Status, &rt.TotalAmountPaise, &rt.Notes, &rt.Version, &rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, 0, wrapErr("rentals.scan", err)
		}
		rentals = append(rentals, rt)
	}
	return rentals, count, wrapErr("rentals.rows", rows.Err())
}

// ListOpenByClient returns every open rental for the client, unpaginated;
// the ledger aggregator needs the complete set to sum outstanding amounts.
func (r *rentalRepository) ListOpenByClient(ctx context.Context, clientID int32) ([]domain.Rental, error) {
	query := `SELECT id, client_id, rental_date, expected_return_date, actual_return_date, status, total_amount_paise, COALESCE(notes, ''), version, created_on, updated_on
	          FROM rentals
	          WHERE client_id = $1 AND status IN ('ACTIVE', 'PARTIALLY_RETURNED')
	          ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, wrapErr("rentals.list_open", err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.ClientID, &rt.RentalDate, &rt.ExpectedReturnDate, &rt.ActualReturnDate,
			&rt.Status, &rt.TotalAmountPaise, &rt.Notes, &rt.Version, &rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, wrapErr("rentals.scan", err)
		}
		rentals = append(rentals, rt)
	}
	return rentals, wrapErr("rentals.rows", rows.Err())
}

// Cancel flips the rental to CANCELLED and returns every issued unit to
// available in one transaction. A failed release rolls the status change
// back too, so the rental stays open and the caller can retry.
func (r *rentalRepository) Cancel(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("rentals.begin", err)
	}
	defer tx.Rollback()

	query := `UPDATE rentals
	          SET status=$1, notes=$2, version=version+1, updated_on=NOW()
	          WHERE id=$3 AND version=$4`
	res, err := tx.ExecContext(ctx, query, rt.Status, rt.Notes, rt.ID, rt.Version)
	if err != nil {
		return wrapErr("rentals.cancel", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrConcurrency
	}

	for _, it := range rt.Items {
		if err := returnGoodTx(ctx, tx, it.CategoryID, it.Quantity); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("rentals.commit", err)
	}
	rt.Version++
	return nil
}

func (r *rentalRepository) FreezeTotalAmount(ctx context.Context, rentalID int32, totalPaise int64) error {
	query := `UPDATE rentals SET total_amount_paise=$1, updated_on=NOW() WHERE id=$2`
	res, err := r.db.ExecContext(ctx, query, totalPaise, rentalID)
	if err != nil {
		return wrapErr("rentals.freeze_total", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
