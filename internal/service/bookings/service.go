package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
	bookingRepo "github.com/WingorOsnova/BarbershopPP/internal/infra/storage/booking"
)

// Service сервис жизненного цикла бронирований: просмотр, отмена, переходы
// статусов и ленивая разметка неявок.
type Service struct {
	repo          BookingRepository
	leadTimeHours int
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый сервис бронирований
func NewService(repo BookingRepository, leadTimeHours int, logger Logger) *Service {
	return &Service{
		repo:          repo,
		leadTimeHours: leadTimeHours,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetByID возвращает бронирование пользователя по ID.
// Чужое бронирование неотличимо от несуществующего.
func (s *Service) GetByID(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Bookings.GetByID: failed to get booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	if booking.UserID == nil || *booking.UserID != userID {
		s.logger.Warn("Bookings.GetByID: booking id=%d does not belong to user id=%d", bookingID, userID)
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// GetUserBookings возвращает бронирования пользователя, опционально
// отфильтрованные по статусу. Перед чтением прошедшие активные записи
// помечаются как no_show, чтобы список не показывал устаревшие статусы.
func (s *Service) GetUserBookings(ctx context.Context, userID int64, status *domain.BookingStatus) ([]domain.Booking, error) {
	if _, err := s.ExpireMissed(ctx); err != nil {
		// Просмотр списка важнее разметки неявок
		s.logger.Error("Bookings.GetUserBookings: no-show sweep failed: %v", err)
	}

	result, err := s.repo.GetByUserID(ctx, userID, status)
	if err != nil {
		s.logger.Error("Bookings.GetUserBookings: failed to get bookings for user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to get user bookings: %v", ErrInternal, err)
	}
	return result, nil
}

// GetBarberBookings возвращает бронирования барбера по фильтру
// (диапазон дат, статус). Перед чтением выполняется разметка неявок.
func (s *Service) GetBarberBookings(ctx context.Context, filter domain.BarberBookingsFilter) ([]domain.Booking, error) {
	if _, err := s.ExpireMissed(ctx); err != nil {
		s.logger.Error("Bookings.GetBarberBookings: no-show sweep failed: %v", err)
	}

	result, err := s.repo.GetByBarberWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("Bookings.GetBarberBookings: failed to get bookings for barber id=%d: %v",
			filter.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber bookings: %v", ErrInternal, err)
	}
	return result, nil
}

// Cancel отменяет бронирование пользователя. Отмена доступна только для
// активного бронирования и не позже чем за лимит часов до визита.
func (s *Service) Cancel(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	booking, err := s.GetByID(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Bookings.Cancel: booking id=%d in status %s cannot be cancelled",
			booking.ID, booking.Status)
		return nil, ErrCannotCancel
	}

	now := s.timeProvider.Now()
	appointmentAt := booking.AppointmentAt(now.Location())
	if appointmentAt.Sub(now) < time.Duration(s.leadTimeHours)*time.Hour {
		s.logger.Warn("Bookings.Cancel: booking id=%d is too close to appointment (%s)",
			booking.ID, appointmentAt.Format(time.RFC3339))
		return nil, ErrCancellationWindow
	}

	updated, err := s.repo.UpdateStatus(ctx, booking.ID, booking.Status, domain.StatusCanceled)
	if err != nil {
		// Параллельный переход успел раньше: бронирование уже не в том
		// статусе, из которого разрешена отмена
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Bookings.Cancel: booking id=%d status changed concurrently", booking.ID)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Bookings.Cancel: failed to cancel booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	s.logger.Info("Bookings.Cancel: booking id=%d cancelled by user id=%d", booking.ID, userID)
	return updated, nil
}

// UpdateStatus переводит бронирование в новый статус с проверкой допустимости
// перехода. Используется стороной барбера: подтверждение, завершение, неявка.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Bookings.UpdateStatus: failed to get booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !booking.CanTransitionTo(status) {
		s.logger.Warn("Bookings.UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, status, booking.ID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, status)
	}

	updated, err := s.repo.UpdateStatus(ctx, booking.ID, booking.Status, status)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Bookings.UpdateStatus: booking id=%d status changed concurrently", booking.ID)
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		}
		s.logger.Error("Bookings.UpdateStatus: failed to update booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	s.logger.Info("Bookings.UpdateStatus: booking id=%d moved %s -> %s", booking.ID, booking.Status, status)
	return updated, nil
}

// ExpireMissed помечает прошедшие активные бронирования как no_show и
// возвращает число обновленных записей. Вызывается лениво перед чтением
// списков, отдельный планировщик не нужен.
func (s *Service) ExpireMissed(ctx context.Context) (int64, error) {
	marked, err := s.repo.MarkNoShows(ctx, s.timeProvider.Now())
	if err != nil {
		return 0, fmt.Errorf("%w: failed to mark no-shows: %v", ErrInternal, err)
	}
	if marked > 0 {
		s.logger.Info("Bookings.ExpireMissed: marked %d bookings as no_show", marked)
	}
	return marked, nil
}
