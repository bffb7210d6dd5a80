package update_booking_status

import (
	"context"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
)

type BookingService interface {
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
