package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
	bookingRepo "github.com/WingorOsnova/BarbershopPP/internal/infra/storage/booking"
	"github.com/WingorOsnova/BarbershopPP/pkg/types"
)

// UseCase use case переноса бронирования на другой слот.
//
// Перенос разрешен только владельцу, только для активного бронирования и
// только если до исходного визита осталось не меньше лимита. Проверка нового
// слота и обновление выполняются в одной сериализуемой транзакции. После
// переноса бронирование возвращается в статус pending и ждет нового
// подтверждения.
type UseCase struct {
	bookingRepo   BookingRepository
	txManager     TransactionManager
	grid          domain.SlotGrid
	leadTimeHours int
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	grid domain.SlotGrid,
	leadTimeHours int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		txManager:     txManager,
		grid:          grid,
		leadTimeHours: leadTimeHours,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, user=%d, new date=%s, new time=%s",
		req.BookingID, req.UserID, req.NewDate.Format(domain.DateFormat), req.NewTime)

	now := uc.timeProvider.Now()

	// 1. Новые дата и время должны быть корректными и не в прошлом
	if req.NewDate.IsZero() || req.NewTime.IsZero() || req.NewTime.Validate() != nil {
		return nil, ErrInvalidDateTime
	}
	if domain.IsDateInPast(req.NewDate, now) {
		return nil, ErrInvalidDateTime
	}

	// 2. Бронирование должно существовать и принадлежать пользователю.
	// Чужое бронирование неотличимо от несуществующего.
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	if booking.UserID == nil || *booking.UserID != req.UserID {
		uc.logger.Warn("RescheduleBooking: booking id=%d does not belong to user id=%d",
			req.BookingID, req.UserID)
		return nil, ErrBookingNotFound
	}

	// 3. Терминальные статусы переносить нельзя
	if !booking.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: booking id=%d in status %s cannot be rescheduled",
			booking.ID, booking.Status)
		return nil, ErrCannotReschedule
	}

	// 4. До исходного визита должно оставаться не меньше лимита
	appointmentAt := booking.AppointmentAt(now.Location())
	if appointmentAt.Sub(now) < time.Duration(uc.leadTimeHours)*time.Hour {
		uc.logger.Warn("RescheduleBooking: booking id=%d is too close to appointment (%s)",
			booking.ID, appointmentAt.Format(time.RFC3339))
		return nil, ErrRescheduleWindow
	}

	var result *domain.Booking

	// 5. Проверка нового слота и обновление в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Новый слот должен быть свободен у того же барбера
		bookedTimes, err := uc.bookingRepo.GetActiveTimes(txCtx, booking.BarberID, req.NewDate)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get active times: %v", err)
			return fmt.Errorf("%w: failed to get active times: %w", ErrInternal, err)
		}

		// Текущий слот самого бронирования при переносе на ту же дату
		// считается свободным
		if domain.IsSameDay(booking.BookingDate, req.NewDate) {
			bookedTimes = removeSlot(bookedTimes, booking.BookingTime)
		}

		freeSlots := domain.SubtractBooked(
			domain.FilterPast(uc.grid.Slots(), req.NewDate, now),
			bookedTimes,
		)
		if !containsSlot(freeSlots, req.NewTime) {
			uc.logger.Warn("RescheduleBooking: slot %s not available for barber=%d on %s",
				req.NewTime, booking.BarberID, req.NewDate.Format(domain.DateFormat))
			return ErrSlotTaken
		}

		// 5.2. Другие активные бронирования пользователя на новое время
		taken, err := uc.bookingRepo.HasActiveAt(txCtx, req.UserID, req.NewDate, req.NewTime, &booking.ID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to check user bookings: %v", err)
			return fmt.Errorf("%w: failed to check user bookings: %w", ErrInternal, err)
		}
		if taken {
			uc.logger.Warn("RescheduleBooking: user id=%d already booked at %s %s",
				req.UserID, req.NewDate.Format(domain.DateFormat), req.NewTime)
			return ErrDuplicateBooking
		}

		// 5.3. Обновление даты и времени, возврат в pending
		updated, err := uc.bookingRepo.Reschedule(txCtx, booking.ID, req.NewDate, req.NewTime)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotTaken):
				return ErrSlotTaken
			case errors.Is(err, bookingRepo.ErrDuplicateUserBooking):
				return ErrDuplicateBooking
			}
			uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reschedule booking: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully rescheduled booking id=%d to %s %s",
		result.ID, result.BookingDate.Format(domain.DateFormat), result.BookingTime)

	return &Response{
		ID:       result.ID,
		BarberID: result.BarberID,
		Date:     result.BookingDate,
		Time:     result.BookingTime,
		Status:   string(result.Status),
	}, nil
}

func containsSlot(slots []types.TimeString, t types.TimeString) bool {
	for _, slot := range slots {
		if slot == t {
			return true
		}
	}
	return false
}

func removeSlot(slots []types.TimeString, t types.TimeString) []types.TimeString {
	out := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if slot != t {
			out = append(out, slot)
		}
	}
	return out
}
