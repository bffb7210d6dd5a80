package catalog

import (
	"context"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	ListActiveBarbers(ctx context.Context) ([]domain.Barber, error)
	ListServices(ctx context.Context) ([]domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
