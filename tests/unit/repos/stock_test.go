package repos

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository/postgres"
)

func TestStockItemRepository_Issue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewStockItemRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE stock_items").
			WithArgs(int32(1), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Issue(ctx, 1, 5)
		assert.NoError(t, err)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		// Guard miss: the WHERE clause filtered the row out, so the repo
		// reads the live counter for the error payload.
		mock.ExpectExec("UPDATE stock_items").
			WithArgs(int32(1), int32(50)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT available_quantity FROM stock_items").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"available_quantity"}).AddRow(12))

		err := repo.Issue(ctx, 1, 50)

		var stockErr *domain.InsufficientStockError
		if assert.ErrorAs(t, err, &stockErr) {
			assert.Equal(t, int32(50), stockErr.Requested)
			assert.Equal(t, int32(12), stockErr.Available)
		}
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockItemRepository_ReturnDamaged(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewStockItemRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE stock_items").
		WithArgs(int32(2), int32(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.ReturnDamaged(ctx, 2, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockItemRepository_AddStock_UnknownCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewStockItemRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE stock_items").
		WithArgs(int32(99), int32(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.AddStock(ctx, 99, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
