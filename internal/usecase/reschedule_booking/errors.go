package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено или
	// принадлежит другому пользователю
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrCannotReschedule возвращается, когда бронирование в терминальном
	// статусе и перенос невозможен
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrRescheduleWindow возвращается, когда до исходного визита осталось
	// меньше минимального времени для переноса
	ErrRescheduleWindow = errors.New("reschedule_booking: too close to appointment time")

	// ErrInvalidDateTime возвращается при некорректных новых дате или времени
	ErrInvalidDateTime = errors.New("reschedule_booking: invalid new date or time")

	// ErrSlotTaken возвращается, когда новый слот занят или недоступен
	ErrSlotTaken = errors.New("reschedule_booking: slot is not available")

	// ErrDuplicateBooking возвращается, когда у пользователя уже есть другое
	// активное бронирование на новое дату и время
	ErrDuplicateBooking = errors.New("reschedule_booking: user already has a booking at this time")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
