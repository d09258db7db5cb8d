package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"equiprent-backend/internal/billing"
	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"
)

type invoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	rentalRepo   repository.RentalRepository
	categoryRepo repository.StockCategoryRepository
	clientRepo   repository.ClientRepository
	emailSvc     EmailService
	dueDays      int
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	rentalRepo repository.RentalRepository,
	categoryRepo repository.StockCategoryRepository,
	clientRepo repository.ClientRepository,
	emailSvc EmailService,
	dueDays int,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		rentalRepo:   rentalRepo,
		categoryRepo: categoryRepo,
		clientRepo:   clientRepo,
		emailSvc:     emailSvc,
		dueDays:      dueDays,
	}
}

// GenerateInvoice composes the rental's invoice and freezes the computed
// total onto the rental. The frozen total_amount and the live accrual are
// deliberately two different values; after this call the ledger uses the
// frozen one.
func (s *invoiceService) GenerateInvoice(ctx context.Context, rentalID int32, asOf time.Time, taxRate decimal.Decimal) (*domain.Invoice, *domain.InvoiceDraft, error) {
	if taxRate.IsNegative() {
		return nil, nil, domain.NewValidationError("tax_rate", "must not be negative")
	}
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, nil, err
	}
	if rental.Status == domain.RentalStatusCancelled {
		return nil, nil, domain.NewValidationError("status", "cancelled rentals are not invoiced")
	}

	ids := make([]int32, 0, len(rental.Items))
	for _, it := range rental.Items {
		ids = append(ids, it.CategoryID)
	}
	categories, err := s.categoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	draft := billing.ComposeInvoice(rental, categories, asOf, taxRate)

	if err := s.rentalRepo.FreezeTotalAmount(ctx, rentalID, draft.TotalPaise); err != nil {
		return nil, nil, err
	}

	issued := time.Now()
	inv := &domain.Invoice{
		Number:        newInvoiceNumber(issued),
		ClientID:      rental.ClientID,
		RentalID:      rentalID,
		PeriodStart:   draft.PeriodStart,
		PeriodEnd:     draft.PeriodEnd,
		SubtotalPaise: draft.SubtotalPaise,
		TaxRate:       draft.TaxRate,
		TaxPaise:      draft.TaxPaise,
		TotalPaise:    draft.TotalPaise,
		Status:        domain.InvoiceStatusPending,
		IssuedOn:      issued,
		DueOn:         issued.AddDate(0, 0, s.dueDays),
	}
	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, nil, err
	}

	logger.Info("Invoice generated", "invoice", inv.Number, "rental_id", rentalID, "total_paise", inv.TotalPaise)

	if client, err := s.clientRepo.GetByID(ctx, rental.ClientID); err == nil && client.Email != "" {
		_ = s.emailSvc.SendInvoiceNotice(ctx, client.Email, client.Name, inv)
	}

	return inv, &draft, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id int32) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) ListInvoices(ctx context.Context, clientID int32) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListByClient(ctx, clientID)
}

func (s *invoiceService) MarkPaid(ctx context.Context, id int32, paidOn time.Time) error {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status == domain.InvoiceStatusCancelled {
		return domain.NewValidationError("status", "cancelled invoices cannot be paid")
	}
	return s.invoiceRepo.UpdateStatus(ctx, id, domain.InvoiceStatusPaid, &paidOn)
}

func (s *invoiceService) Cancel(ctx context.Context, id int32) error {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status == domain.InvoiceStatusPaid {
		return domain.NewValidationError("status", "paid invoices cannot be cancelled")
	}
	return s.invoiceRepo.UpdateStatus(ctx, id, domain.InvoiceStatusCancelled, nil)
}

func newInvoiceNumber(issued time.Time) string {
	suffix := strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
	return fmt.Sprintf("INV-%s-%s", issued.Format("20060102"), suffix)
}
