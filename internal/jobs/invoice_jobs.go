package jobs

import (
	"context"
	"time"

	"equiprent-backend/internal/logger"
)

// MarkOverdueInvoices flips PENDING invoices past their due date to OVERDUE
// and notifies the client for each one.
func (jr *JobRunner) MarkOverdueInvoices() {
	jr.runWithRecovery("MarkOverdueInvoices", func() {
		ctx := context.Background()

		query := `
			UPDATE invoices
			SET status = 'OVERDUE', updated_on = NOW()
			WHERE status = 'PENDING' AND due_on < $1
			RETURNING id
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to mark overdue invoices", "error", err)
			return
		}
		defer rows.Close()

		var invoiceIDs []int32
		for rows.Next() {
			var id int32
			if err := rows.Scan(&id); err != nil {
				logger.Error("Failed to scan overdue invoice id", "error", err)
				continue
			}
			invoiceIDs = append(invoiceIDs, id)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue invoices", "error", err)
			return
		}

		reminded := 0
		for _, id := range invoiceIDs {
			inv, err := jr.store.InvoiceRepository.GetByID(ctx, id)
			if err != nil {
				logger.Error("Failed to load overdue invoice", "invoice_id", id, "error", err)
				continue
			}
			client, err := jr.store.ClientRepository.GetByID(ctx, inv.ClientID)
			if err != nil {
				logger.Error("Failed to load client for overdue invoice",
					"invoice_id", id, "client_id", inv.ClientID, "error", err)
				continue
			}
			if client.Email == "" {
				logger.Debug("Client has no email, skipping overdue reminder",
					"invoice_id", id, "client_id", client.ID)
				continue
			}
			if err := jr.services.Email.SendOverdueInvoiceReminder(ctx, client.Email, client.Name, inv); err != nil {
				logger.Error("Failed to send overdue invoice reminder",
					"invoice_id", id, "client_id", client.ID, "error", err)
				continue
			}
			reminded++
		}

		logger.Info("Overdue invoices marked",
			"marked", len(invoiceIDs),
			"reminders_sent", reminded)
	})
}
