package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (name, phone, email, address, id_proof_ref, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Phone, c.Email, c.Address, c.IDProofRef, time.Now()).Scan(&c.ID)
	return wrapErr("clients.create", err)
}

func (r *clientRepository) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	c := &domain.Client{}
	query := `SELECT id, name, phone, COALESCE(email, ''), COALESCE(address, ''), COALESCE(id_proof_ref, ''), created_on
	          FROM clients WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.IDProofRef, &c.CreatedOn)
	if err != nil {
		return nil, wrapErr("clients.get", err)
	}
	return c, nil
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET name=$1, phone=$2, email=$3, address=$4, id_proof_ref=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Phone, c.Email, c.Address, c.IDProofRef, c.ID)
	if err != nil {
		return wrapErr("clients.update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Client, int32, error) {
	return r.query(ctx,
		`SELECT id, name, phone, COALESCE(email, ''), COALESCE(address, ''), COALESCE(id_proof_ref, ''), created_on FROM clients`,
		`SELECT count(*) FROM clients`,
		nil, page, pageSize)
}

func (r *clientRepository) Search(ctx context.Context, q string, page, pageSize int32) ([]domain.Client, int32, error) {
	pattern := "%" + q + "%"
	return r.query(ctx,
		`SELECT id, name, phone, COALESCE(email, ''), COALESCE(address, ''), COALESCE(id_proof_ref, ''), created_on
		 FROM clients WHERE name ILIKE $1 OR phone LIKE $1`,
		`SELECT count(*) FROM clients WHERE name ILIKE $1 OR phone LIKE $1`,
		[]interface{}{pattern}, page, pageSize)
}

func (r *clientRepository) query(ctx context.Context, listSQL, countSQL string, args []interface{}, page, pageSize int32) ([]domain.Client, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&count); err != nil {
		return nil, 0, wrapErr("clients.count", err)
	}

	offset := (page - 1) * pageSize
	listSQL += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, wrapErr("clients.list", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.IDProofRef, &c.CreatedOn); err != nil {
			return nil, 0, wrapErr("clients.scan", err)
		}
		clients = append(clients, c)
	}
	return clients, count, wrapErr("clients.rows", rows.Err())
}
