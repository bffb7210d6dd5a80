package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/WingorOsnova/BarbershopPP/internal/api/handlers"
	"github.com/WingorOsnova/BarbershopPP/internal/domain"
	getAvailableSlots "github.com/WingorOsnova/BarbershopPP/internal/usecase/get_available_slots"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/available-slots?barber_id=1&booking_date=2026-03-15
//
// Эндпоинт кормит выпадающий список времени в форме записи, поэтому на любой
// некорректный ввод отвечает пустым списком слотов со статусом 200: форма
// просто показывает «нет свободного времени» вместо ошибки.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(r.URL.Query().Get("barber_id"), 10, 64)
	if err != nil || barberID <= 0 {
		h.logger.Warn("GET /api/available-slots - Invalid barber_id: %q", r.URL.Query().Get("barber_id"))
		respondEmpty(w)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("booking_date"))
	if err != nil {
		h.logger.Warn("GET /api/available-slots - Invalid booking_date: %q", r.URL.Query().Get("booking_date"))
		respondEmpty(w)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		BarberID: barberID,
		Date:     date,
	})
	if err != nil {
		if errors.Is(err, getAvailableSlots.ErrBarberNotFound) {
			h.logger.Warn("GET /api/available-slots - Barber not found: barber_id=%d", barberID)
		} else {
			h.logger.Error("GET /api/available-slots - Failed to get slots: barber_id=%d, error=%v",
				barberID, err)
		}
		respondEmpty(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func respondEmpty(w http.ResponseWriter) {
	handlers.RespondJSON(w, http.StatusOK, &SlotsResponse{Slots: []string{}})
}
