package service

import (
	"context"
	"time"

	"equiprent-backend/internal/billing"
	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type ledgerService struct {
	rentalRepo  repository.RentalRepository
	paymentRepo repository.PaymentRepository
	clientRepo  repository.ClientRepository
}

func NewLedgerService(
	rentalRepo repository.RentalRepository,
	paymentRepo repository.PaymentRepository,
	clientRepo repository.ClientRepository,
) LedgerService {
	return &ledgerService{
		rentalRepo:  rentalRepo,
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
	}
}

func (s *ledgerService) ClientStatement(ctx context.Context, clientID int32, since time.Time) (*domain.ClientBalance, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	rentals, err := s.rentalRepo.ListOpenByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByClient(ctx, clientID, since)
	if err != nil {
		return nil, err
	}
	bal := billing.ClientBalance(clientID, rentals, payments)
	return &bal, nil
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	clientRepo  repository.ClientRepository
}

func NewPaymentService(paymentRepo repository.PaymentRepository, clientRepo repository.ClientRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, clientRepo: clientRepo}
}

func (s *paymentService) RecordPayment(ctx context.Context, p *domain.Payment) error {
	if p.AmountPaise <= 0 {
		return domain.NewValidationError("amount_paise", "must be positive")
	}
	switch p.Method {
	case domain.PaymentMethodCash, domain.PaymentMethodUPI, domain.PaymentMethodBankTransfer, domain.PaymentMethodCheque:
	default:
		return domain.NewValidationError("method", "unknown payment method %q", p.Method)
	}
	if _, err := s.clientRepo.GetByID(ctx, p.ClientID); err != nil {
		return err
	}
	if p.PaidOn.IsZero() {
		p.PaidOn = time.Now()
	}
	return s.paymentRepo.Create(ctx, p)
}

func (s *paymentService) ListPayments(ctx context.Context, page, pageSize int32) ([]domain.Payment, int32, error) {
	return s.paymentRepo.List(ctx, page, pageSize)
}
