package handlers

import (
	"time"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
)

// SuccessResponse стандартный ответ при успешной операции над бронированием
type SuccessResponse struct {
	OK      bool   `json:"ok"`
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse стандартный ответ с одним сообщением об ошибке
type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// FieldErrorsResponse ответ с ошибками валидации по полям формы
type FieldErrorsResponse struct {
	OK     bool                `json:"ok"`
	Errors map[string][]string `json:"errors"`
}

// BookingResponse HTTP представление бронирования, общее для всех
// эндпоинтов, которые его возвращают
type BookingResponse struct {
	ID          int64   `json:"id"`
	ClientName  string  `json:"client_name"`
	ClientPhone string  `json:"client_phone"`
	ClientEmail *string `json:"client_email,omitempty"`
	Barber      int64   `json:"barber"`
	Service     int64   `json:"service"`
	BookingDate string  `json:"booking_date"`
	BookingTime string  `json:"booking_time"`
	Message     *string `json:"message,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// BookingFromDomain конвертирует доменную модель бронирования в HTTP response
func BookingFromDomain(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:          b.ID,
		ClientName:  b.ClientName,
		ClientPhone: b.ClientPhone,
		ClientEmail: b.ClientEmail,
		Barber:      b.BarberID,
		Service:     b.ServiceID,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		BookingTime: b.BookingTime.String(),
		Message:     b.Message,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
}

// BookingsFromDomain конвертирует список бронирований в HTTP response.
// Пустой список сериализуется как [], а не null.
func BookingsFromDomain(list []domain.Booking) []*BookingResponse {
	result := make([]*BookingResponse, 0, len(list))
	for i := range list {
		result = append(result, BookingFromDomain(&list[i]))
	}
	return result
}
