package create_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/WingorOsnova/BarbershopPP/internal/api/handlers"
	"github.com/WingorOsnova/BarbershopPP/internal/api/middleware"
	createBooking "github.com/WingorOsnova/BarbershopPP/internal/usecase/create_booking"
	"github.com/WingorOsnova/BarbershopPP/pkg/metrics"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingCreated     = "Запись создана, мы свяжемся с вами для подтверждения."
	msgSlotTaken          = "выбранный слот уже занят, обновите список свободного времени"
	msgDuplicateBooking   = "у вас уже есть запись на это время"
	msgBarberNotFound     = "барбер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgRequestRejected    = "не удалось обработать запрос, проверьте форму и попробуйте снова"
)

type Handler struct {
	useCase CreateBookingUseCase
	metrics *metrics.Metrics // nil, если метрики выключены
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

func (h *Handler) countRejected(reason string) {
	if h.metrics != nil {
		h.metrics.BookingsRejectedTotal.WithLabelValues(reason).Inc()
	}
}

// Handle POST /api/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /api/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Аутентификация опциональна: гость бронирует без user_id
	var userID *int64
	if id, ok := middleware.GetUserID(r.Context()); ok {
		userID = &id
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		var verr *createBooking.ValidationError

		switch {
		case errors.As(err, &verr):
			h.logger.Warn("POST /api/book - Validation failed: %v", verr)
			h.countRejected("validation")
			handlers.RespondFieldErrors(w, verr.Fields)

		case errors.Is(err, createBooking.ErrSpamRejected):
			// Спам не отличается снаружи от обычной ошибки формы
			h.logger.Warn("POST /api/book - Spam rejected: barber=%d", req.Barber)
			h.countRejected("spam")
			handlers.RespondBadRequest(w, msgRequestRejected)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /api/book - Slot taken: barber=%d, date=%s, time=%s",
				req.Barber, req.BookingDate, req.BookingTime)
			h.countRejected("slot_taken")
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /api/book - Duplicate booking: date=%s, time=%s",
				req.BookingDate, req.BookingTime)
			h.countRejected("duplicate")
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrBarberNotFound):
			h.logger.Warn("POST /api/book - Barber not found: barber=%d", req.Barber)
			h.countRejected("barber_not_found")
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /api/book - Service not found: service=%d", req.Service)
			h.countRejected("service_not_found")
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("POST /api/book - Failed to create booking: barber=%d, error=%v",
				req.Barber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.BookingsCreatedTotal.WithLabelValues(strconv.FormatInt(result.BarberID, 10)).Inc()
	}

	h.logger.Info("POST /api/book - Booking created: booking_id=%d, barber=%d, date=%s, time=%s",
		result.ID, result.BarberID, req.BookingDate, req.BookingTime)
	handlers.RespondSuccess(w, result.ID, msgBookingCreated)
}
