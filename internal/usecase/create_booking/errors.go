package create_booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation возвращается при ошибках валидации полей запроса
	ErrValidation = errors.New("create_booking: validation failed")

	// ErrBarberNotFound возвращается, когда барбер не найден или неактивен
	ErrBarberNotFound = errors.New("create_booking: barber not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSlotTaken возвращается, когда выбранный слот занят или недоступен
	ErrSlotTaken = errors.New("create_booking: slot is not available")

	// ErrDuplicateBooking возвращается, когда у пользователя уже есть активное
	// бронирование на это же дату и время (у любого барбера)
	ErrDuplicateBooking = errors.New("create_booking: user already has a booking at this time")

	// ErrSpamRejected возвращается при заполненном honeypot-поле.
	// Наружу причина не раскрывается: ответ выглядит как обычная ошибка валидации.
	ErrSpamRejected = errors.New("create_booking: spam rejected")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ValidationError ошибка валидации с сообщениями по полям.
// Раскладывается errors.Is(err, ErrValidation).
type ValidationError struct {
	Fields map[string][]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) hasErrors() bool {
	return len(e.Fields) > 0
}

// Error реализует интерфейс error
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, messages := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(messages, "; ")))
	}
	return fmt.Sprintf("create_booking: validation failed: %s", strings.Join(parts, ", "))
}

// Unwrap позволяет сопоставлять ошибку с ErrValidation через errors.Is
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
