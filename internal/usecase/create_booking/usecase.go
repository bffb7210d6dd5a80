package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
	bookingRepo "github.com/WingorOsnova/BarbershopPP/internal/infra/storage/booking"
	catalogRepo "github.com/WingorOsnova/BarbershopPP/internal/infra/storage/catalog"
	"github.com/WingorOsnova/BarbershopPP/pkg/types"
)

// UseCase use case создания бронирования.
//
// Проверка доступности слота и вставка выполняются в одной сериализуемой
// транзакции; частичные уникальные индексы БД — второй рубеж защиты от гонок.
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	grid         domain.SlotGrid
	countryCode  string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	grid domain.SlotGrid,
	countryCode string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		grid:         grid,
		countryCode:  countryCode,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: barber=%d, service=%d, date=%s, time=%s",
		req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Honeypot: заполненное скрытое поле — автоматическая отправка.
	// Отклоняем молча, наружу причина не уходит.
	if req.Honeypot != "" {
		uc.logger.Warn("CreateBooking: honeypot filled, rejecting as spam (barber=%d, date=%s)",
			req.BarberID, req.Date.Format(domain.DateFormat))
		return nil, ErrSpamRejected
	}

	// 2. Текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация полей и нормализация телефона
	normalizedPhone, verr := validateRequest(req, now, uc.countryCode)
	if verr != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", verr)
		return nil, verr
	}

	// 4. Барбер должен существовать и быть активным
	barber, err := uc.catalogRepo.GetBarber(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBarberNotFound) {
			uc.logger.Warn("CreateBooking: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("CreateBooking: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if !barber.IsBookable() {
		uc.logger.Warn("CreateBooking: barber id=%d is not active", req.BarberID)
		return nil, ErrBarberNotFound
	}

	// 5. Услуга должна существовать
	if _, err := uc.catalogRepo.GetService(ctx, req.ServiceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 6. Проверка доступности и вставка — в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Свежая доступность: сетка минус прошедшие минус занятые.
		// Состояние читается на момент коммита, а не рендера формы.
		bookedTimes, err := uc.bookingRepo.GetActiveTimes(txCtx, req.BarberID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get active times: %v", err)
			return fmt.Errorf("%w: failed to get active times: %w", ErrInternal, err)
		}

		freeSlots := domain.SubtractBooked(
			domain.FilterPast(uc.grid.Slots(), req.Date, now),
			bookedTimes,
		)

		if !containsSlot(freeSlots, req.Time) {
			uc.logger.Warn("CreateBooking: slot %s not available for barber=%d on %s",
				req.Time, req.BarberID, req.Date.Format(domain.DateFormat))
			return ErrSlotTaken
		}

		// 6.2. У аутентифицированного пользователя не должно быть второй
		// активной записи на это же время (у любого барбера)
		if req.UserID != nil {
			taken, err := uc.bookingRepo.HasActiveAt(txCtx, *req.UserID, req.Date, req.Time, nil)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to check user bookings: %v", err)
				return fmt.Errorf("%w: failed to check user bookings: %w", ErrInternal, err)
			}
			if taken {
				uc.logger.Warn("CreateBooking: user id=%d already booked at %s %s",
					*req.UserID, req.Date.Format(domain.DateFormat), req.Time)
				return ErrDuplicateBooking
			}
		}

		// 6.3. Вставка в статусе pending
		booking := &domain.Booking{
			ClientName:  req.ClientName,
			ClientPhone: normalizedPhone,
			ClientEmail: req.ClientEmail,
			UserID:      req.UserID,
			BarberID:    req.BarberID,
			ServiceID:   req.ServiceID,
			BookingDate: req.Date,
			BookingTime: req.Time,
			Message:     req.Message,
			Status:      domain.StatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Уникальные индексы — страховка от гонки, которую не поймала
			// проверка выше: проигравший получает конфликт, а не 500
			switch {
			case errors.Is(err, bookingRepo.ErrSlotTaken):
				return ErrSlotTaken
			case errors.Is(err, bookingRepo.ErrDuplicateUserBooking):
				return ErrDuplicateBooking
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (barber=%d, %s %s)",
		result.ID, result.BarberID, result.BookingDate.Format(domain.DateFormat), result.BookingTime)

	return &Response{
		ID:          result.ID,
		ClientName:  result.ClientName,
		ClientPhone: result.ClientPhone,
		ClientEmail: result.ClientEmail,
		UserID:      result.UserID,
		BarberID:    result.BarberID,
		ServiceID:   result.ServiceID,
		Date:        result.BookingDate,
		Time:        result.BookingTime,
		Message:     result.Message,
		Status:      string(result.Status),
		CreatedAt:   result.CreatedAt,
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
