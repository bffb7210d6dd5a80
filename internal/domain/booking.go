package domain

import (
	"time"

	"github.com/WingorOsnova/BarbershopPP/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCanceled  BookingStatus = "canceled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a client appointment with a barber
type Booking struct {
	ID          int64
	ClientName  string
	ClientPhone string
	ClientEmail *string
	UserID      *int64 // nil для гостевых бронирований
	BarberID    int64
	ServiceID   int64
	BookingDate time.Time
	BookingTime types.TimeString
	Message     *string
	Status      BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking blocks its slot (pending or confirmed)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCanceled || b.Status == StatusCompleted || b.Status == StatusNoShow
}

// CanBeCancelled returns true if the booking may still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// CanBeRescheduled returns true if the booking may be moved to another slot
func (b *Booking) CanBeRescheduled() bool {
	return b.IsActive()
}

// statusTransitions допустимые переходы статусов.
// Перенос (reschedule) — отдельная операция: дата/время меняются, статус
// сбрасывается в pending, здесь он не описывается.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCanceled, StatusNoShow},
	StatusConfirmed: {StatusCanceled, StatusCompleted, StatusNoShow},
	StatusCanceled:  {},
	StatusCompleted: {},
	StatusNoShow:    {},
}

// CanTransitionTo returns true if the status transition is legal
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AppointmentAt returns the full appointment timestamp in the given location
func (b *Booking) AppointmentAt(loc *time.Location) time.Time {
	return CombineDateTime(b.BookingDate, b.BookingTime, loc)
}

// BarberBookingsFilter фильтр для выборки бронирований барбера
type BarberBookingsFilter struct {
	BarberID        int64
	StartDate       *time.Time     // начало периода (опционально)
	EndDate         *time.Time     // конец периода (опционально)
	Status          *BookingStatus // фильтр по статусу (опционально)
	IncludeInactive bool           // включать ли отмененные/завершенные/no-show
}
