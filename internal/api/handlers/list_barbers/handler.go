package list_barbers

import (
	"net/http"

	"github.com/WingorOsnova/BarbershopPP/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/barbers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barbers, err := h.service.ListBarbers(r.Context())
	if err != nil {
		h.logger.Error("GET /api/barbers - Failed to list barbers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /api/barbers - Barbers retrieved: count=%d", len(barbers))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(barbers))
}
