package create_booking

import (
	"context"
	"time"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
	"github.com/WingorOsnova/BarbershopPP/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveTimes(ctx context.Context, barberID int64, date time.Time) ([]types.TimeString, error)
	HasActiveAt(ctx context.Context, userID int64, date time.Time, t types.TimeString, excludeID *int64) (bool, error)
}

// CatalogRepository интерфейс репозитория каталога (барберы и услуги)
type CatalogRepository interface {
	GetBarber(ctx context.Context, id int64) (*domain.Barber, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
