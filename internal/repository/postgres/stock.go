package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type stockCategoryRepository struct {
	db *sql.DB
}

func NewStockCategoryRepository(db *sql.DB) repository.StockCategoryRepository {
	return &stockCategoryRepository{db: db}
}

func (r *stockCategoryRepository) Create(ctx context.Context, c *domain.StockCategory) error {
	query := `INSERT INTO stock_categories (name, daily_rate_paise, size, weight_kg, material, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.DailyRatePaise, c.Size, c.WeightKg, c.Material, time.Now()).Scan(&c.ID)
	return wrapErr("stock_categories.create", err)
}

func (r *stockCategoryRepository) GetByID(ctx context.Context, id int32) (*domain.StockCategory, error) {
	c := &domain.StockCategory{}
	query := `SELECT id, name, daily_rate_paise, COALESCE(size, ''), COALESCE(weight_kg, ''), COALESCE(material, ''), created_on
	          FROM stock_categories WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.DailyRatePaise, &c.Size, &c.WeightKg, &c.Material, &c.CreatedOn)
	if err != nil {
		return nil, wrapErr("stock_categories.get", err)
	}
	return c, nil
}

func (r *stockCategoryRepository) GetByIDs(ctx context.Context, ids []int32) (map[int32]domain.StockCategory, error) {
	query := `SELECT id, name, daily_rate_paise, COALESCE(size, ''), COALESCE(weight_kg, ''), COALESCE(material, ''), created_on
	          FROM stock_categories WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, wrapErr("stock_categories.get_by_ids", err)
	}
	defer rows.Close()

	cats := make(map[int32]domain.StockCategory, len(ids))
	for rows.Next() {
		var c domain.StockCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.DailyRatePaise, &c.Size, &c.WeightKg, &c.Material, &c.CreatedOn); err != nil {
			return nil, wrapErr("stock_categories.scan", err)
		}
		cats[c.ID] = c
	}
	return cats, wrapErr("stock_categories.rows", rows.Err())
}

// Update edits category metadata and the rate going forward. Issued rental
// items keep their frozen rate.
func (r *stockCategoryRepository) Update(ctx context.Context, c *domain.StockCategory) error {
	query := `UPDATE stock_categories SET name=$1, daily_rate_paise=$2, size=$3, weight_kg=$4, material=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.DailyRatePaise, c.Size, c.WeightKg, c.Material, c.ID)
	if err != nil {
		return wrapErr("stock_categories.update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *stockCategoryRepository) List(ctx context.Context) ([]domain.StockCategory, error) {
	query := `SELECT id, name, daily_rate_paise, COALESCE(size, ''), COALESCE(weight_kg, ''), COALESCE(material, ''), created_on
	          FROM stock_categories ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapErr("stock_categories.list", err)
	}
	defer rows.Close()

	var cats []domain.StockCategory
	for rows.Next() {
		var c domain.StockCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.DailyRatePaise, &c.Size, &c.WeightKg, &c.Material, &c.CreatedOn); err != nil {
			return nil, wrapErr("stock_categories.scan", err)
		}
		cats = append(cats, c)
	}
	return cats, wrapErr("stock_categories.rows", rows.Err())
}

type stockItemRepository struct {
	db *sql.DB
}

func NewStockItemRepository(db *sql.DB) repository.StockItemRepository {
	return &stockItemRepository{db: db}
}

func (r *stockItemRepository) Create(ctx context.Context, item *domain.StockItem) error {
	query := `INSERT INTO stock_items (category_id, total_quantity, available_quantity, rented_quantity, damaged_quantity, updated_on)
	          VALUES ($1, $2, $2, 0, 0, $3) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, item.CategoryID, item.TotalQuantity, time.Now()).Scan(&item.ID)
	if err != nil {
		return wrapErr("stock_items.create", err)
	}
	item.AvailableQuantity = item.TotalQuantity
	return nil
}

func (r *stockItemRepository) GetByCategory(ctx context.Context, categoryID int32) (*domain.StockItem, error) {
	item := &domain.StockItem{}
	query := `SELECT id, category_id, total_quantity, available_quantity, rented_quantity, damaged_quantity, updated_on
	          FROM stock_items WHERE category_id = $1`
	err := r.db.QueryRowContext(ctx, query, categoryID).Scan(
		&item.ID, &item.CategoryID, &item.TotalQuantity, &item.AvailableQuantity,
		&item.RentedQuantity, &item.DamagedQuantity, &item.UpdatedOn)
	if err != nil {
		return nil, wrapErr("stock_items.get", err)
	}
	return item, nil
}

func (r *stockItemRepository) List(ctx context.Context) ([]domain.StockItem, error) {
	query := `SELECT id, category_id, total_quantity, available_quantity, rented_quantity, damaged_quantity, updated_on
	          FROM stock_items ORDER BY category_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapErr("stock_items.list", err)
	}
	defer rows.Close()

	var items []domain.StockItem
	for rows.Next() {
		var it domain.StockItem
		if err := rows.Scan(&it.ID, &it.CategoryID, &it.TotalQuantity, &it.AvailableQuantity,
			&it.RentedQuantity, &it.DamagedQuantity, &it.UpdatedOn); err != nil {
			return nil, wrapErr("stock_items.scan", err)
		}
		items = append(items, it)
	}
	return items, wrapErr("stock_items.rows", rows.Err())
}

// Issue atomically moves qty from available to rented. The availability
// guard lives in the WHERE clause, not in application code, so concurrent
// issuance against the same category cannot over-issue.
func (r *stockItemRepository) Issue(ctx context.Context, categoryID, qty int32) error {
	return issueTx(ctx, r.db, categoryID, qty)
}

func (r *stockItemRepository) ReturnGood(ctx context.Context, categoryID, qty int32) error {
	return returnGoodTx(ctx, r.db, categoryID, qty)
}

func (r *stockItemRepository) ReturnDamaged(ctx context.Context, categoryID, qty int32) error {
	return returnDamagedTx(ctx, r.db, categoryID, qty)
}

func (r *stockItemRepository) AddStock(ctx context.Context, categoryID, qty int32) error {
	query := `UPDATE stock_items
	          SET total_quantity = total_quantity + $2,
	              available_quantity = available_quantity + $2,
	              updated_on = NOW()
	          WHERE category_id = $1`
	res, err := r.db.ExecContext(ctx, query, categoryID, qty)
	if err != nil {
		return wrapErr("stock_items.add_stock", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// execer lets the counter updates run on either *sql.DB or *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func issueTx(ctx context.Context, ex execer, categoryID, qty int32) error {
	query := `UPDATE stock_items
	          SET available_quantity = available_quantity - $2,
	              rented_quantity = rented_quantity + $2,
	              updated_on = NOW()
	          WHERE category_id = $1 AND available_quantity >= $2`
	res, err := ex.ExecContext(ctx, query, categoryID, qty)
	if err != nil {
		return wrapErr("stock_items.issue", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var available int32
		if err := ex.QueryRowContext(ctx, `SELECT available_quantity FROM stock_items WHERE category_id = $1`, categoryID).Scan(&available); err != nil {
			return wrapErr("stock_items.issue", err)
		}
		return &domain.InsufficientStockError{CategoryID: categoryID, Requested: qty, Available: available}
	}
	return nil
}

func returnGoodTx(ctx context.Context, ex execer, categoryID, qty int32) error {
	query := `UPDATE stock_items
	          SET rented_quantity = rented_quantity - $2,
	              available_quantity = available_quantity + $2,
	              updated_on = NOW()
	          WHERE category_id = $1`
	res, err := ex.ExecContext(ctx, query, categoryID, qty)
	if err != nil {
		return wrapErr("stock_items.return_good", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// returnDamagedTx covers both DAMAGED and LOST conditions; neither returns
// units to available.
func returnDamagedTx(ctx context.Context, ex execer, categoryID, qty int32) error {
	query := `UPDATE stock_items
	          SET rented_quantity = rented_quantity - $2,
	              damaged_quantity = damaged_quantity + $2,
	              updated_on = NOW()
	          WHERE category_id = $1`
	res, err := ex.ExecContext(ctx, query, categoryID, qty)
	if err != nil {
		return wrapErr("stock_items.return_damaged", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
