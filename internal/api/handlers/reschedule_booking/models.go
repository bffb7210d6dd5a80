package reschedule_booking

import (
	"time"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
	rescheduleBooking "github.com/WingorOsnova/BarbershopPP/internal/usecase/reschedule_booking"
	"github.com/WingorOsnova/BarbershopPP/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	BookingDate string `json:"booking_date"` // "2026-03-15"
	BookingTime string `json:"booking_time"` // "10:00"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, userID int64) (*rescheduleBooking.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	newTime, err := types.NewTimeStringFromString(r.BookingTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		NewDate:   newDate,
		NewTime:   newTime,
	}, nil
}
