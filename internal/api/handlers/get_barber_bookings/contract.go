package get_barber_bookings

import (
	"context"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
)

type BookingService interface {
	GetBarberBookings(ctx context.Context, filter domain.BarberBookingsFilter) ([]domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
