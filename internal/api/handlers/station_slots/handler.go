package station_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/evcsm/EVCS-BookingService/internal/api/handlers"
	"github.com/evcsm/EVCS-BookingService/internal/service/slots"
)

const msgStationNotFound = "station not found"

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations/{stationId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stationID := mux.Vars(r)["stationId"]

	result, err := h.service.ListByStation(r.Context(), stationID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrStationNotFound):
			h.logger.Warn("GET /stations/{id}/slots - station %s not found", stationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		default:
			h.logger.Error("GET /stations/{id}/slots - failed for station %s: %v", stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
