package update_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/evcsm/EVCS-BookingService/internal/api/handlers"
	"github.com/evcsm/EVCS-BookingService/internal/service/slots"
	"github.com/evcsm/EVCS-BookingService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSlotNotFound       = "slot not found"
	msgInvalidCombination = "invalid connector type and power rating combination"
)

// UpdateSlotRequest is the PUT /slots/{slotId} body.
type UpdateSlotRequest struct {
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

// Handle PUT /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/{id} - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSlot(r.Context(), slotID, &models.UpdateSlotRequest{
		SlotCode:      req.SlotCode,
		ConnectorType: req.ConnectorType,
		PowerRatingKW: req.PowerRatingKW,
		PricePerKWh:   req.PricePerKWh,
	})
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PUT /slots/{id} - slot %s not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrInvalidCombination):
			h.logger.Warn("PUT /slots/{id} - invalid combination: %s at %dkW", req.ConnectorType, req.PowerRatingKW)
			handlers.RespondBadRequest(w, msgInvalidCombination)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PUT /slots/{id} - invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /slots/{id} - failed for slot %s: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slots/{id} - slot updated: id=%s", slotID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
