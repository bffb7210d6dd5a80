package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
	catalogRepo "github.com/WingorOsnova/BarbershopPP/internal/infra/storage/catalog"
)

// UseCase use case получения свободных слотов барбера на дату.
//
// Свободные слоты = сетка рабочего дня минус прошедшие (для сегодняшней даты)
// минус занятые активными бронированиями. Прошедшие даты дают пустой список.
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	grid         domain.SlotGrid
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	grid domain.SlotGrid,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		grid:         grid,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: barber=%d, date=%s",
		req.BarberID, req.Date.Format(domain.DateFormat))

	// 1. Барбер должен существовать и быть активным
	barber, err := uc.catalogRepo.GetBarber(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBarberNotFound) {
			uc.logger.Warn("GetAvailableSlots: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if !barber.IsBookable() {
		uc.logger.Warn("GetAvailableSlots: barber id=%d is not active", req.BarberID)
		return nil, ErrBarberNotFound
	}

	// 2. Занятые слоты активных бронирований
	bookedTimes, err := uc.bookingRepo.GetActiveTimes(ctx, req.BarberID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get active times: %v", err)
		return nil, fmt.Errorf("%w: failed to get active times: %v", ErrInternal, err)
	}

	// 3. Сетка минус прошедшие минус занятые
	now := uc.timeProvider.Now()
	freeSlots := domain.SubtractBooked(
		domain.FilterPast(uc.grid.Slots(), req.Date, now),
		bookedTimes,
	)

	uc.logger.Info("GetAvailableSlots: barber=%d, date=%s: %d free slots",
		req.BarberID, req.Date.Format(domain.DateFormat), len(freeSlots))

	return &Response{Slots: freeSlots}, nil
}
