package reschedule_booking

import (
	"time"

	"github.com/WingorOsnova/BarbershopPP/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID int64            // ID переносимого бронирования
	UserID    int64            // ID пользователя-владельца
	NewDate   time.Time        // Новая дата визита
	NewTime   types.TimeString // Новое время начала слота
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	ID       int64            // ID бронирования
	BarberID int64            // ID барбера
	Date     time.Time        // Новая дата
	Time     types.TimeString // Новое время
	Status   string           // Статус после переноса (pending)
}
