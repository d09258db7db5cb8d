package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository/postgres"
)

func TestRentalRepository_CreateWithItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	rental := &domain.Rental{
		ClientID:   7,
		RentalDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:     domain.RentalStatusActive,
		Items: []domain.RentalItem{
			{CategoryID: 1, Quantity: 10, DailyRatePaise: 2500},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO rentals").
		WithArgs(rental.ClientID, rental.RentalDate, nil, string(rental.Status), "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "version"}).AddRow(10, 1))
	mock.ExpectQuery("INSERT INTO rental_items").
		WithArgs(int32(10), int32(1), int32(10), int64(2500)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
	mock.ExpectExec("UPDATE stock_items").
		WithArgs(int32(1), int32(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.CreateWithItems(ctx, rental)
	assert.NoError(t, err)
	assert.Equal(t, int32(10), rental.ID)
	assert.Equal(t, int32(1), rental.Version)
	assert.Equal(t, int32(101), rental.Items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_CreateWithItems_RollsBackOnShortfall(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	rental := &domain.Rental{
		ClientID:   7,
		RentalDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:     domain.RentalStatusActive,
		Items: []domain.RentalItem{
			{CategoryID: 1, Quantity: 50, DailyRatePaise: 2500},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO rentals").
		WithArgs(rental.ClientID, rental.RentalDate, nil, string(rental.Status), "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "version"}).AddRow(10, 1))
	mock.ExpectQuery("INSERT INTO rental_items").
		WithArgs(int32(10), int32(1), int32(50), int64(2500)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
	mock.ExpectExec("UPDATE stock_items").
		WithArgs(int32(1), int32(50)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT available_quantity FROM stock_items").
		WithArgs(int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"available_quantity"}).AddRow(12))
	mock.ExpectRollback()

	err = repo.CreateWithItems(ctx, rental)

	var stockErr *domain.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_Cancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	rental := &domain.Rental{
		ID:      10,
		Status:  domain.RentalStatusCancelled,
		Notes:   "client backed out",
		Version: 2,
		Items: []domain.RentalItem{
			{CategoryID: 1, Quantity: 10},
			{CategoryID: 2, Quantity: 4},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rentals").
		WithArgs(string(rental.Status), "client backed out", rental.ID, int32(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE stock_items").
		WithArgs(int32(1), int32(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE stock_items").
		WithArgs(int32(2), int32(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.Cancel(ctx, rental)
	assert.NoError(t, err)
	assert.Equal(t, int32(3), rental.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_Cancel_RollsBackOnFailedRelease(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	rental := &domain.Rental{
		ID:      10,
		Status:  domain.RentalStatusCancelled,
		Version: 2,
		Items: []domain.RentalItem{
			{CategoryID: 1, Quantity: 10},
			{CategoryID: 2, Quantity: 4},
		},
	}

	// The status flip succeeds but releasing the second line fails; the
	// whole transaction rolls back so the rental stays ACTIVE in the
	// database and its units stay accounted for.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rentals").
		WithArgs(string(rental.Status), "", rental.ID, int32(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE stock_items").
		WithArgs(int32(1), int32(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE stock_items").
		WithArgs(int32(2), int32(4)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err = repo.Cancel(ctx, rental)

	var storeErr *domain.StoreError
	assert.ErrorAs(t, err, &storeErr)
	// The in-memory version is untouched, so a retry reads fresh state.
	assert.Equal(t, int32(2), rental.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_ListOpenByClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	cols := []string{"id", "client_id", "rental_date", "expected_return_date", "actual_return_date",
		"status", "total_amount_paise", "notes", "version", "created_on", "updated_on"}
	now := time.Now()

	// A single unpaginated query keyed by client only; the result set is
	// complete no matter how many open rentals the client carries.
	mock.ExpectQuery("SELECT (.+) FROM rentals").
		WithArgs(int32(7)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(10, 7, now, nil, nil, "ACTIVE", 0, "", 1, now, now).
			AddRow(11, 7, now, nil, nil, "PARTIALLY_RETURNED", 0, "", 2, now, now))

	rentals, err := repo.ListOpenByClient(ctx, 7)
	assert.NoError(t, err)
	assert.Len(t, rentals, 2)
	assert.Equal(t, domain.RentalStatusActive, rentals[0].Status)
	assert.Equal(t, domain.RentalStatusPartiallyReturned, rentals[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_Cancel_VersionMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	rental := &domain.Rental{ID: 10, Status: domain.RentalStatusCancelled, Version: 3}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rentals").
		WithArgs(string(rental.Status), "", rental.ID, int32(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = repo.Cancel(ctx, rental)
	assert.ErrorIs(t, err, domain.ErrConcurrency)
	// The in-memory version is untouched on a miss.
	assert.Equal(t, int32(3), rental.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}
