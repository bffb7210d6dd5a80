package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда слот (барбер, дата, время) уже занят
	// активным бронированием — нарушение частичного уникального индекса
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrDuplicateUserBooking возвращается, когда у пользователя уже есть
	// активное бронирование на это же дату и время
	ErrDuplicateUserBooking = errors.New("booking.repository: user already has a booking at this time")

	// ErrStatusConflict возвращается, когда условное обновление статуса не
	// нашло строку: статус бронирования успел измениться конкурентно
	ErrStatusConflict = errors.New("booking.repository: booking status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
