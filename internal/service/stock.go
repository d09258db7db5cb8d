package service

import (
	"context"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type stockService struct {
	categoryRepo repository.StockCategoryRepository
	stockRepo    repository.StockItemRepository
}

func NewStockService(categoryRepo repository.StockCategoryRepository, stockRepo repository.StockItemRepository) StockService {
	return &stockService{categoryRepo: categoryRepo, stockRepo: stockRepo}
}

func (s *stockService) CreateCategory(ctx context.Context, cat *domain.StockCategory, initialQuantity int32) error {
	if cat.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if cat.DailyRatePaise <= 0 {
		return domain.NewValidationError("daily_rate_paise", "must be positive")
	}
	if initialQuantity < 0 {
		return domain.NewValidationError("initial_quantity", "must not be negative")
	}
	if err := s.categoryRepo.Create(ctx, cat); err != nil {
		return err
	}
	item := &domain.StockItem{CategoryID: cat.ID, TotalQuantity: initialQuantity}
	return s.stockRepo.Create(ctx, item)
}

func (s *stockService) GetCategory(ctx context.Context, id int32) (*domain.StockCategory, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *stockService) UpdateCategory(ctx context.Context, cat *domain.StockCategory) error {
	if cat.DailyRatePaise <= 0 {
		return domain.NewValidationError("daily_rate_paise", "must be positive")
	}
	return s.categoryRepo.Update(ctx, cat)
}

func (s *stockService) ListCategories(ctx context.Context) ([]domain.StockCategory, error) {
	return s.categoryRepo.List(ctx)
}

func (s *stockService) ListStockLevels(ctx context.Context) ([]domain.StockItem, error) {
	return s.stockRepo.List(ctx)
}

func (s *stockService) AddStock(ctx context.Context, categoryID, qty int32) error {
	if qty <= 0 {
		return domain.NewValidationError("quantity", "must be positive")
	}
	return s.stockRepo.AddStock(ctx, categoryID, qty)
}
