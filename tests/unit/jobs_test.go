package unit

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"equiprent-backend/internal/config"
	"equiprent-backend/internal/jobs"
	"equiprent-backend/internal/repository/postgres"
)

// The runner needs nothing beyond the store and the email service; the
// bundle it is handed mirrors what the cronjob binary wires.
func TestMarkOverdueInvoices(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	email := new(MockEmailService)
	runner := jobs.NewJobRunner(db, postgres.NewStore(db), &jobs.Services{Email: email}, &config.Config{})

	now := time.Now()
	dbMock.ExpectQuery("UPDATE invoices").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	invoiceCols := []string{"id", "number", "client_id", "rental_id", "period_start", "period_end",
		"subtotal_paise", "tax_rate", "tax_paise", "total_paise", "status", "issued_on", "due_on", "paid_on"}
	dbMock.ExpectQuery("SELECT (.+) FROM invoices").
		WithArgs(int32(5)).
		WillReturnRows(sqlmock.NewRows(invoiceCols).
			AddRow(5, "INV-20260301-AB12", 7, 10, now, now, 225000, "18", 40500, 265500, "OVERDUE", now, now, nil))

	clientCols := []string{"id", "name", "phone", "email", "address", "id_proof_ref", "created_on"}
	dbMock.ExpectQuery("SELECT (.+) FROM clients").
		WithArgs(int32(7)).
		WillReturnRows(sqlmock.NewRows(clientCols).
			AddRow(7, "Sharma Constructions", "9900000000", "office@sharma.example", "", "", now))

	email.On("SendOverdueInvoiceReminder", mock.Anything, "office@sharma.example", "Sharma Constructions", mock.Anything).
		Return(nil)

	runner.MarkOverdueInvoices()

	email.AssertExpectations(t)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
