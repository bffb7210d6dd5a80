package list_barbers

import (
	"context"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
)

type CatalogService interface {
	ListBarbers(ctx context.Context) ([]domain.Barber, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
