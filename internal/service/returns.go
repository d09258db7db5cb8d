package service

import (
	"context"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"
)

type returnService struct {
	returnRepo repository.ReturnRepository
	rentalRepo repository.RentalRepository
	clientRepo repository.ClientRepository
	emailSvc   EmailService
}

func NewReturnService(
	returnRepo repository.ReturnRepository,
	rentalRepo repository.RentalRepository,
	clientRepo repository.ClientRepository,
	emailSvc EmailService,
) ReturnService {
	return &returnService{
		returnRepo: returnRepo,
		rentalRepo: rentalRepo,
		clientRepo: clientRepo,
		emailSvc:   emailSvc,
	}
}

// ProcessReturn reconciles one return batch against a rental. Validation
// happens up front against the rental snapshot; persistence is a single
// transaction in the repository, so a failure anywhere leaves no partial
// state behind. A batch may cover any subset of the rental's line items;
// repeated partial batches converge because the returned counters are
// cumulative and the status is recomputed from every line each time.
func (s *returnService) ProcessReturn(ctx context.Context, rentalID int32, returnDate time.Time, submissions []domain.ReturnSubmission, notes string) (*domain.Return, *domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, nil, err
	}
	if rental.Status != domain.RentalStatusActive && rental.Status != domain.RentalStatusPartiallyReturned {
		return nil, nil, domain.NewValidationError("status", "rental %d is %s and cannot accept returns", rentalID, rental.Status)
	}

	itemsByID := make(map[int32]*domain.RentalItem, len(rental.Items))
	for i := range rental.Items {
		itemsByID[rental.Items[i].ID] = &rental.Items[i]
	}

	ret := &domain.Return{
		RentalID:   rentalID,
		ReturnDate: returnDate,
		Notes:      notes,
	}
	var moves []domain.StockMove
	seen := make(map[int32]bool, len(submissions))

	for _, sub := range submissions {
		item, ok := itemsByID[sub.RentalItemID]
		if !ok {
			return nil, nil, domain.NewValidationError("rental_item_id", "line item %d does not belong to rental %d", sub.RentalItemID, rentalID)
		}
		if seen[sub.RentalItemID] {
			return nil, nil, domain.NewValidationError("rental_item_id", "line item %d appears more than once in the batch", sub.RentalItemID)
		}
		seen[sub.RentalItemID] = true

		if sub.ReturnedQuantity < 0 {
			return nil, nil, domain.NewValidationError("returned_quantity", "must not be negative for line item %d", sub.RentalItemID)
		}
		if pending := item.Pending(); sub.ReturnedQuantity > pending {
			return nil, nil, domain.NewValidationError("returned_quantity",
				"line item %d has %d pending, got %d", sub.RentalItemID, pending, sub.ReturnedQuantity)
		}
		switch sub.Condition {
		case domain.ReturnConditionGood, domain.ReturnConditionDamaged, domain.ReturnConditionLost:
		default:
			return nil, nil, domain.NewValidationError("condition", "unknown condition %q", sub.Condition)
		}
		if sub.Condition == domain.ReturnConditionGood && sub.DamagePaise != 0 {
			return nil, nil, domain.NewValidationError("damage_paise", "damage cost is only meaningful for damaged or lost units")
		}
		if sub.DamagePaise < 0 {
			return nil, nil, domain.NewValidationError("damage_paise", "must not be negative")
		}

		// Zero-quantity submissions are a documented no-op, dropped here
		// and never stored.
		if sub.ReturnedQuantity == 0 {
			continue
		}

		ret.Items = append(ret.Items, domain.ReturnItem{
			RentalItemID:     sub.RentalItemID,
			ReturnedQuantity: sub.ReturnedQuantity,
			Condition:        sub.Condition,
			DamagePaise:      sub.DamagePaise,
			DamageNote:       sub.DamageNote,
			PhotoRefs:        sub.PhotoRefs,
		})
		ret.TotalDamagePaise += sub.DamagePaise
		moves = append(moves, domain.StockMove{
			CategoryID: item.CategoryID,
			Quantity:   sub.ReturnedQuantity,
			ToDamaged:  sub.Condition != domain.ReturnConditionGood,
		})

		item.ReturnedQuantity += sub.ReturnedQuantity
	}

	if len(ret.Items) == 0 {
		return nil, nil, domain.NewValidationError("items", "the batch contains no units to return")
	}

	// Status is recomputed across all line items, not just the ones in
	// this batch. actual_return_date is only ever set on the transition
	// to COMPLETED.
	if rental.FullyReturned() {
		rental.Status = domain.RentalStatusCompleted
		d := returnDate
		rental.ActualReturnDate = &d
	} else {
		rental.Status = domain.RentalStatusPartiallyReturned
	}

	if err := s.returnRepo.Reconcile(ctx, ret, rental, moves); err != nil {
		return nil, nil, err
	}

	logger.Info("Return reconciled", "rental_id", rentalID, "return_id", ret.ID,
		"lines", len(ret.Items), "status", rental.Status, "damage_paise", ret.TotalDamagePaise)

	if client, err := s.clientRepo.GetByID(ctx, rental.ClientID); err == nil && client.Email != "" {
		_ = s.emailSvc.SendReturnReceipt(ctx, client.Email, client.Name, ret)
	}

	return ret, rental, nil
}

func (s *returnService) ListReturns(ctx context.Context, rentalID int32) ([]domain.Return, error) {
	return s.returnRepo.ListByRental(ctx, rentalID)
}
