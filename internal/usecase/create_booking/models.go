package create_booking

import (
	"time"

	"github.com/WingorOsnova/BarbershopPP/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientName  string           // Имя клиента
	ClientPhone string           // Телефон клиента (до нормализации)
	ClientEmail *string          // Email клиента (опционально)
	UserID      *int64           // ID аутентифицированного пользователя (nil для гостей)
	BarberID    int64            // ID барбера
	ServiceID   int64            // ID услуги
	Date        time.Time        // Дата бронирования (без времени)
	Time        types.TimeString // Время начала слота (например, "10:00")
	Message     *string          // Комментарий клиента (опционально)
	Honeypot    string           // Скрытое поле-ловушка, должно быть пустым
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64            // ID созданного бронирования
	ClientName  string           // Имя клиента
	ClientPhone string           // Нормализованный телефон ("+380...")
	ClientEmail *string          // Email клиента
	UserID      *int64           // ID пользователя
	BarberID    int64            // ID барбера
	ServiceID   int64            // ID услуги
	Date        time.Time        // Дата бронирования
	Time        types.TimeString // Время начала
	Message     *string          // Комментарий
	Status      string           // Статус бронирования (pending)
	CreatedAt   time.Time        // Время создания
}
