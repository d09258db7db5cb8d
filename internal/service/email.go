package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.Debug("Email sent", "to", to, "subject", subject)
	return nil
}

func (s *emailService) SendReturnReceipt(ctx context.Context, toEmail, clientName string, ret *domain.Return) error {
	body := fmt.Sprintf("Hello %s,\n\nWe have recorded your return against rental #%d on %s.",
		clientName, ret.RentalID, ret.ReturnDate.Format("2006-01-02"))
	if ret.TotalDamagePaise > 0 {
		body += fmt.Sprintf("\n\nAssessed damage charges: %s.", formatRupees(ret.TotalDamagePaise))
	}
	body += "\n\nThank you."
	return s.send(toEmail, clientName, fmt.Sprintf("Return receipt for rental #%d", ret.RentalID), body)
}

func (s *emailService) SendInvoiceNotice(ctx context.Context, toEmail, clientName string, inv *domain.Invoice) error {
	body := fmt.Sprintf("Hello %s,\n\nInvoice %s for rental #%d has been issued.\nAmount due: %s\nDue date: %s\n\nThank you.",
		clientName, inv.Number, inv.RentalID, formatRupees(inv.TotalPaise), inv.DueOn.Format("2006-01-02"))
	return s.send(toEmail, clientName, fmt.Sprintf("Invoice %s", inv.Number), body)
}

func (s *emailService) SendOverdueInvoiceReminder(ctx context.Context, toEmail, clientName string, inv *domain.Invoice) error {
	body := fmt.Sprintf("Hello %s,\n\nInvoice %s of %s was due on %s and is still unpaid. Please arrange payment at the earliest.",
		clientName, inv.Number, formatRupees(inv.TotalPaise), inv.DueOn.Format("2006-01-02"))
	return s.send(toEmail, clientName, fmt.Sprintf("Overdue invoice %s", inv.Number), body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, toEmail, clientName string, rentalID int32, duePaise int64) error {
	body := fmt.Sprintf("Hello %s,\n\nRental #%d is past its expected return date. Charges accrued so far: %s. Please arrange the return.",
		clientName, rentalID, formatRupees(duePaise))
	return s.send(toEmail, clientName, fmt.Sprintf("Return reminder for rental #%d", rentalID), body)
}

func formatRupees(paise int64) string {
	return fmt.Sprintf("₹%d.%02d", paise/100, paise%100)
}
