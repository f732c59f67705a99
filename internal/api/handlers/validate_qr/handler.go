package validate_qr

import (
	"net/http"

	"github.com/evcsm/EVCS-BookingService/internal/api/handlers"
	validateQR "github.com/evcsm/EVCS-BookingService/internal/usecase/validate_qr"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	useCase ValidateQRUseCase
	logger  Logger
}

func NewHandler(useCase ValidateQRUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/validateQR
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateQRRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/validateQR - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &validateQR.Request{
		QRPayload: req.QRPayload,
		StationID: req.StationID,
	})
	if err != nil {
		h.logger.Error("POST /bookings/validateQR - failed for station %s: %v", req.StationID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
