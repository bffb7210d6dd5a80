package get_barber_bookings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/WingorOsnova/BarbershopPP/internal/api/handlers"
	"github.com/WingorOsnova/BarbershopPP/internal/domain"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidStatus   = "некорректный статус бронирования"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/barbers/{barberId}/bookings?date_from=...&date_to=...&status=...&include_inactive=true
//
// Рабочий журнал барбера: по умолчанию только активные записи,
// include_inactive=true добавляет отмененные, завершенные и неявки.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{barberId}/bookings - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	filter := domain.BarberBookingsFilter{BarberID: barberID}
	query := r.URL.Query()

	if raw := query.Get("date_from"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /barbers/{barberId}/bookings - Invalid date_from: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.StartDate = &parsed
	}

	if raw := query.Get("date_to"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /barbers/{barberId}/bookings - Invalid date_to: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.EndDate = &parsed
	}

	if raw := query.Get("status"); raw != "" {
		status := domain.BookingStatus(raw)
		switch status {
		case domain.StatusPending, domain.StatusConfirmed, domain.StatusCanceled,
			domain.StatusCompleted, domain.StatusNoShow:
			filter.Status = &status
		default:
			h.logger.Warn("GET /barbers/{barberId}/bookings - Invalid status: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
	}

	filter.IncludeInactive = query.Get("include_inactive") == "true"

	result, err := h.service.GetBarberBookings(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /barbers/{barberId}/bookings - Failed to get bookings: barber_id=%d, error=%v",
			barberID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /barbers/{barberId}/bookings - Bookings retrieved: barber_id=%d, count=%d",
		barberID, len(result))
	handlers.RespondJSON(w, http.StatusOK, handlers.BookingsFromDomain(result))
}
