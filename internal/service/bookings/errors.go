package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено или
	// принадлежит другому пользователю
	ErrBookingNotFound = errors.New("service.bookings: booking not found")

	// ErrCannotCancel возвращается, когда бронирование в терминальном статусе
	// и отмена невозможна
	ErrCannotCancel = errors.New("service.bookings: booking cannot be cancelled")

	// ErrCancellationWindow возвращается, когда до визита осталось меньше
	// минимального времени для отмены
	ErrCancellationWindow = errors.New("service.bookings: too close to appointment time")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("service.bookings: invalid status transition")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service.bookings: internal error")
)
