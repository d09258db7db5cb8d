package jobs

import (
	"context"
	"time"

	"equiprent-backend/internal/billing"
	"equiprent-backend/internal/logger"
)

// SendReturnReminders emails clients whose open rentals are past their
// expected return date, quoting the charges accrued so far.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		query := `
			SELECT id
			FROM rentals
			WHERE status IN ('ACTIVE', 'PARTIALLY_RETURNED')
			  AND expected_return_date IS NOT NULL
			  AND expected_return_date < $1
			ORDER BY expected_return_date
		`

		rows, err := jr.db.QueryContext(ctx, query, now)
		if err != nil {
			logger.Error("Failed to query overdue rentals", "error", err)
			return
		}
		defer rows.Close()

		var rentalIDs []int32
		for rows.Next() {
			var id int32
			if err := rows.Scan(&id); err != nil {
				logger.Error("Failed to scan overdue rental id", "error", err)
				continue
			}
			rentalIDs = append(rentalIDs, id)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue rentals", "error", err)
			return
		}

		sent := 0
		for _, id := range rentalIDs {
			rental, err := jr.store.RentalRepository.GetByID(ctx, id)
			if err != nil {
				logger.Error("Failed to load overdue rental", "rental_id", id, "error", err)
				continue
			}
			client, err := jr.store.ClientRepository.GetByID(ctx, rental.ClientID)
			if err != nil {
				logger.Error("Failed to load client for overdue rental",
					"rental_id", id, "client_id", rental.ClientID, "error", err)
				continue
			}
			if client.Email == "" {
				logger.Debug("Client has no email, skipping return reminder",
					"rental_id", id, "client_id", client.ID)
				continue
			}

			accrual := billing.Accrue(rental, now)
			if err := jr.services.Email.SendReturnReminder(ctx, client.Email, client.Name, rental.ID, accrual.TotalPaise); err != nil {
				logger.Error("Failed to send return reminder",
					"rental_id", id, "client_id", client.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Return reminders processed",
			"overdue_rentals", len(rentalIDs),
			"reminders_sent", sent)
	})
}
