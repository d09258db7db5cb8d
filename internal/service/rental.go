package service

import (
	"context"
	"time"

	"equiprent-backend/internal/billing"
	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"
)

type rentalService struct {
	rentalRepo   repository.RentalRepository
	categoryRepo repository.StockCategoryRepository
	clientRepo   repository.ClientRepository
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	categoryRepo repository.StockCategoryRepository,
	clientRepo repository.ClientRepository,
) RentalService {
	return &rentalService{
		rentalRepo:   rentalRepo,
		categoryRepo: categoryRepo,
		clientRepo:   clientRepo,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, clientID int32, rentalDate time.Time, expectedReturn *time.Time, items []RentalItemRequest, notes string) (*domain.Rental, error) {
	if len(items) == 0 {
		return nil, domain.NewValidationError("items", "a rental needs at least one line item")
	}
	if expectedReturn != nil && expectedReturn.Before(rentalDate) {
		return nil, domain.NewValidationError("expected_return_date", "must not be before the rental date")
	}

	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	ids := make([]int32, 0, len(items))
	seen := make(map[int32]bool, len(items))
	for _, req := range items {
		if req.Quantity <= 0 {
			return nil, domain.NewValidationError("quantity", "must be positive for category %d", req.CategoryID)
		}
		if seen[req.CategoryID] {
			return nil, domain.NewValidationError("category_id", "category %d appears more than once", req.CategoryID)
		}
		seen[req.CategoryID] = true
		ids = append(ids, req.CategoryID)
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		ClientID:           clientID,
		RentalDate:         rentalDate,
		ExpectedReturnDate: expectedReturn,
		Status:             domain.RentalStatusActive,
		Notes:              notes,
		Items:              make([]domain.RentalItem, 0, len(items)),
	}
	for _, req := range items {
		cat, ok := categories[req.CategoryID]
		if !ok {
			return nil, domain.NewValidationError("category_id", "unknown category %d", req.CategoryID)
		}
		// The rate is frozen here; later category edits never reprice
		// issued line items.
		rental.Items = append(rental.Items, domain.RentalItem{
			CategoryID:     req.CategoryID,
			Quantity:       req.Quantity,
			DailyRatePaise: cat.DailyRatePaise,
		})
	}

	// Stock issuance happens inside the same transaction as the insert;
	// the in-database availability guard is what actually prevents
	// over-issuance under concurrency.
	if err := s.rentalRepo.CreateWithItems(ctx, rental); err != nil {
		return nil, err
	}

	logger.Info("Rental issued", "rental_id", rental.ID, "client_id", clientID, "lines", len(rental.Items))
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID int32, asOf time.Time) (*domain.Rental, *billing.Accrual, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, nil, err
	}
	acc := billing.Accrue(rental, asOf)
	return rental, &acc, nil
}

func (s *rentalService) ListRentals(ctx context.Context, clientID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.List(ctx, clientID, status, page, pageSize)
}

func (s *rentalService) CancelRental(ctx context.Context, rentalID int32, reason string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusActive {
		return nil, domain.NewValidationError("status", "only active rentals can be cancelled, current status is %s", rental.Status)
	}
	for _, it := range rental.Items {
		if it.ReturnedQuantity > 0 {
			return nil, domain.NewValidationError("status", "rental has returned units; process the remaining returns instead")
		}
	}

	rental.Status = domain.RentalStatusCancelled
	if reason != "" {
		rental.Notes = reason
	}
	// The status flip and the stock release commit together; if releasing
	// any line fails the rental stays ACTIVE and the cancel can be retried.
	if err := s.rentalRepo.Cancel(ctx, rental); err != nil {
		return nil, err
	}
	logger.Info("Rental cancelled", "rental_id", rentalID)
	return rental, nil
}
