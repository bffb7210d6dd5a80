package cancel_booking

import (
	"context"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
)

type BookingService interface {
	Cancel(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
