package create_slot

import (
	"errors"
	"net/http"

	"github.com/evcsm/EVCS-BookingService/internal/api/handlers"
	"github.com/evcsm/EVCS-BookingService/internal/service/slots"
	"github.com/evcsm/EVCS-BookingService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgStationNotFound    = "station not found"
	msgInvalidCombination = "invalid connector type and power rating combination"
)

// CreateSlotRequest is the POST /slots body.
type CreateSlotRequest struct {
	StationID     string  `json:"stationId"`
	SlotCode      string  `json:"slotCode"`
	ConnectorType string  `json:"connectorType"`
	PowerRatingKW int     `json:"powerRatingKW"`
	PricePerKWh   float64 `json:"pricePerKWh"`
}

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

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateSlot(r.Context(), &models.CreateSlotRequest{
		StationID:     req.StationID,
		SlotCode:      req.SlotCode,
		ConnectorType: req.ConnectorType,
		PowerRatingKW: req.PowerRatingKW,
		PricePerKWh:   req.PricePerKWh,
	})
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrStationNotFound):
			h.logger.Warn("POST /slots - station %s not found", req.StationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, slots.ErrInvalidCombination):
			h.logger.Warn("POST /slots - invalid combination: %s at %dkW", req.ConnectorType, req.PowerRatingKW)
			handlers.RespondBadRequest(w, msgInvalidCombination)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /slots - invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /slots - failed for station %s: %v", req.StationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - slot created: id=%s, station=%s", result.ID, result.StationID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
