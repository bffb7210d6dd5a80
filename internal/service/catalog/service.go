package catalog

import (
	"context"
	"fmt"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
)

// Service сервис каталога: витрина барберов и прайс-лист услуг.
type Service struct {
	repo   CatalogRepository
	logger Logger
}

// NewService создает новый сервис каталога
func NewService(repo CatalogRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListBarbers возвращает активных барберов, отсортированных по имени
func (s *Service) ListBarbers(ctx context.Context) ([]domain.Barber, error) {
	barbers, err := s.repo.ListActiveBarbers(ctx)
	if err != nil {
		s.logger.Error("Catalog.ListBarbers: failed to list barbers: %v", err)
		return nil, fmt.Errorf("%w: failed to list barbers: %v", ErrInternal, err)
	}
	return barbers, nil
}

// ListServices возвращает все услуги, отсортированные по цене
func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	services, err := s.repo.ListServices(ctx)
	if err != nil {
		s.logger.Error("Catalog.ListServices: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}
	return services, nil
}
