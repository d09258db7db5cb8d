package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type returnRepository struct {
	db *sql.DB
}

func NewReturnRepository(db *sql.DB) repository.ReturnRepository {
	return &returnRepository{db: db}
}

// Reconcile persists one return batch atomically: header, items, the
// per-line returned_quantity counters, the rental's new status (optimistic
// version check) and the stock moves. rental carries the state the service
// computed, with Version still holding the value it read; any failure rolls
// everything back so no partial reconciliation is ever visible.
func (r *returnRepository) Reconcile(ctx context.Context, ret *domain.Return, rental *domain.Rental, moves []domain.StockMove) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("returns.begin", err)
	}
	defer tx.Rollback()

	headerQuery := `INSERT INTO returns (rental_id, return_date, total_damage_paise, notes, created_on)
	                VALUES ($1, $2, $3, $4, NOW()) RETURNING id`
	if err := tx.QueryRowContext(ctx, headerQuery, ret.RentalID, ret.ReturnDate, ret.TotalDamagePaise, ret.Notes).Scan(&ret.ID); err != nil {
		return wrapErr("returns.create", err)
	}

	itemQuery := `INSERT INTO return_items (return_id, rental_item_id, returned_quantity, condition, damage_paise, damage_note, photo_refs)
	              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	// The guard re-checks quantity bounds under the transaction; a miss
	// means a concurrent batch consumed the pending quantity after the
	// service validated.
	counterQuery := `UPDATE rental_items
	                 SET returned_quantity = returned_quantity + $1
	                 WHERE id = $2 AND returned_quantity + $1 <= quantity`
	for i := range ret.Items {
		it := &ret.Items[i]
		it.ReturnID = ret.ID
		err := tx.QueryRowContext(ctx, itemQuery, ret.ID, it.RentalItemID, it.ReturnedQuantity,
			it.Condition, it.DamagePaise, it.DamageNote, pq.Array(it.PhotoRefs)).Scan(&it.ID)
		if err != nil {
			return wrapErr("return_items.create", err)
		}

		res, err := tx.ExecContext(ctx, counterQuery, it.ReturnedQuantity, it.RentalItemID)
		if err != nil {
			return wrapErr("rental_items.advance", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrConcurrency
		}
	}

	statusQuery := `UPDATE rentals
	                SET status=$1, actual_return_date=$2, version=version+1, updated_on=NOW()
	                WHERE id=$3 AND version=$4`
	res, err := tx.ExecContext(ctx, statusQuery, rental.Status, rental.ActualReturnDate, rental.ID, rental.Version)
	if err != nil {
		return wrapErr("rentals.reconcile_status", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrConcurrency
	}

	for _, mv := range moves {
		if mv.ToDamaged {
			err = returnDamagedTx(ctx, tx, mv.CategoryID, mv.Quantity)
		} else {
			err = returnGoodTx(ctx, tx, mv.CategoryID, mv.Quantity)
		}
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("returns.commit", err)
	}
	rental.Version++
	return nil
}

func (r *returnRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.Return, error) {
	query := `SELECT id, rental_id, return_date, total_damage_paise, COALESCE(notes, ''), created_on
	          FROM returns WHERE rental_id = $1 ORDER BY return_date, id`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, wrapErr("returns.list", err)
	}
	defer rows.Close()

	var returns []domain.Return
	for rows.Next() {
		var ret domain.Return
		if err := rows.Scan(&ret.ID, &ret.RentalID, &ret.ReturnDate, &ret.TotalDamagePaise, &ret.Notes, &ret.CreatedOn); err != nil {
			return nil, wrapErr("returns.scan", err)
		}
		returns = append(returns, ret)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("returns.rows", err)
	}

	for i := range returns {
		items, err := r.loadItems(ctx, returns[i].ID)
		if err != nil {
			return nil, err
		}
		returns[i].Items = items
	}
	return returns, nil
}

func (r *returnRepository) loadItems(ctx context.Context, returnID int32) ([]domain.ReturnItem, error) {
	query := `SELECT id, return_id, rental_item_id, returned_quantity, condition, damage_paise, COALESCE(damage_note, ''), photo_refs
	          FROM return_items WHERE return_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, returnID)
	if err != nil {
		return nil, wrapErr("return_items.list", err)
	}
	defer rows.Close()

	var items []domain.ReturnItem
	for rows.Next() {
		var it domain.ReturnItem
		if err := rows.Scan(&it.ID, &it.ReturnID, &it.RentalItemID, &it.ReturnedQuantity,
			&it.Condition, &it.DamagePaise, &it.DamageNote, pq.Array(&it.PhotoRefs)); err != nil {
			return nil, wrapErr("return_items.scan", err)
		}
		items = append(items, it)
	}
	return items, wrapErr("return_items.rows", rows.Err())
}
