package repos

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository/postgres"
)

func reconcileFixtures() (*domain.Return, *domain.Rental, []domain.StockMove) {
	returnDate := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	ret := &domain.Return{
		RentalID:         10,
		ReturnDate:       returnDate,
		TotalDamagePaise: 15000,
		Items: []domain.ReturnItem{
			{RentalItemID: 101, ReturnedQuantity: 6, Condition: domain.ReturnConditionGood},
			{RentalItemID: 102, ReturnedQuantity: 2, Condition: domain.ReturnConditionDamaged, DamagePaise: 15000, DamageNote: "bent frame"},
		},
	}
	rental := &domain.Rental{
		ID:      10,
		Status:  domain.RentalStatusPartiallyReturned,
		Version: 1,
	}
	moves := []domain.StockMove{
		{CategoryID: 1, Quantity: 6, ToDamaged: false},
		{CategoryID: 2, Quantity: 2, ToDamaged: true},
	}
	return ret, rental, moves
}

func TestReturnRepository_Reconcile(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReturnRepository(db)
	ctx := context.Background()

	ret, rental, moves := reconcileFixtures()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO returns").
		WithArgs(ret.RentalID, ret.ReturnDate, ret.TotalDamagePaise, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	// Line one: good units.
	mock.ExpectQuery("INSERT INTO return_items").
		WithArgs(int32(1), int32(101), int32(6), string(domain.ReturnConditionGood), int64(0), "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec("UPDATE rental_items").
		WithArgs(int32(6), int32(101)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Line two: damaged units.
	mock.ExpectQuery("INSERT INTO return_items").
		WithArgs(int32(1), int32(102), int32(2), string(domain.ReturnConditionDamaged), int64(15000), "bent frame", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectExec("UPDATE rental_items").
		WithArgs(int32(2), int32(102)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Rental status update with the version the caller read.
	mock.ExpectExec("UPDATE rentals").
		WithArgs(string(rental.Status), nil, rental.ID, int32(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Stock moves: good back to available, damaged to the damaged counter.
	mock.ExpectExec("UPDATE stock_items").
		WithArgs(int32(1), int32(6)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE stock_items").
		WithArgs(int32(2), int32(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.Reconcile(ctx, ret, rental, moves)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), ret.ID)
	assert.Equal(t, int32(11), ret.Items[0].ID)
	assert.Equal(t, int32(2), rental.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReturnRepository_Reconcile_ConcurrentBatchRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReturnRepository(db)
	ctx := context.Background()

	ret, rental, moves := reconcileFixtures()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO returns").
		WithArgs(ret.RentalID, ret.ReturnDate, ret.TotalDamagePaise, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO return_items").
		WithArgs(int32(1), int32(101), int32(6), string(domain.ReturnConditionGood), int64(0), "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	// A concurrent batch already consumed the pending quantity: the
	// in-transaction guard misses and everything rolls back.
	mock.ExpectExec("UPDATE rental_items").
		WithArgs(int32(6), int32(101)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = repo.Reconcile(ctx, ret, rental, moves)
	assert.ErrorIs(t, err, domain.ErrConcurrency)
	assert.Equal(t, int32(1), rental.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}
