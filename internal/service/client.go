package service

import (
	"context"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) CreateClient(ctx context.Context, c *domain.Client) error {
	if c.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if c.Phone == "" {
		return domain.NewValidationError("phone", "is required")
	}
	return s.clientRepo.Create(ctx, c)
}

func (s *clientService) GetClient(ctx context.Context, id int32) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *clientService) UpdateClient(ctx context.Context, c *domain.Client) error {
	if c.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	return s.clientRepo.Update(ctx, c)
}

func (s *clientService) ListClients(ctx context.Context, query string, page, pageSize int32) ([]domain.Client, int32, error) {
	if query != "" {
		return s.clientRepo.Search(ctx, query, page, pageSize)
	}
	return s.clientRepo.List(ctx, page, pageSize)
}
