package create_booking

import (
	"time"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
	createBooking "github.com/WingorOsnova/BarbershopPP/internal/usecase/create_booking"
	"github.com/WingorOsnova/BarbershopPP/pkg/types"
)

// CreateBookingRequest HTTP request model.
// Поле website — honeypot: скрытое поле формы, люди его не заполняют.
type CreateBookingRequest struct {
	ClientName  string  `json:"client_name"`
	ClientPhone string  `json:"client_phone"`
	ClientEmail *string `json:"client_email,omitempty"`
	Barber      int64   `json:"barber"`
	Service     int64   `json:"service"`
	BookingDate string  `json:"booking_date"` // "2026-03-15"
	BookingTime string  `json:"booking_time"` // "10:00"
	Message     *string `json:"message,omitempty"`
	Honeypot    string  `json:"website"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Некорректные дата и время не обрывают запрос: use case соберет их в общий
// список ошибок валидации вместе с остальными полями.
func (r *CreateBookingRequest) ToUseCaseRequest(userID *int64) *createBooking.Request {
	var bookingDate time.Time
	if parsed, err := time.Parse(domain.DateFormat, r.BookingDate); err == nil {
		bookingDate = parsed
	}

	// Некорректная строка сохраняется как есть, чтобы валидация отличила
	// неверный формат от пустого поля
	bookingTime := types.TimeString(r.BookingTime)
	if parsed, err := types.NewTimeStringFromString(r.BookingTime); err == nil {
		bookingTime = parsed
	}

	return &createBooking.Request{
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ClientEmail: r.ClientEmail,
		UserID:      userID,
		BarberID:    r.Barber,
		ServiceID:   r.Service,
		Date:        bookingDate,
		Time:        bookingTime,
		Message:     r.Message,
		Honeypot:    r.Honeypot,
	}
}
