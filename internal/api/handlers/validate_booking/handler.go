package validate_booking

import (
	"net/http"

	"github.com/evcsm/EVCS-BookingService/internal/api/handlers"
	"github.com/evcsm/EVCS-BookingService/internal/api/middleware"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	useCase ValidateBookingUseCase
	logger  Logger
}

func NewHandler(useCase ValidateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/validate
//
// A dry run of the booking rules. Rule failures are a 200 verdict, not an
// HTTP error, so clients can pre-check a form before submitting it.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req ValidateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/validate - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal)
	if err != nil {
		// A malformed timestamp is itself a verdict for a dry run.
		handlers.RespondJSON(w, http.StatusOK, &ValidateBookingResponse{
			IsValid:      false,
			ErrorMessage: "invalid reservationStartTime, expected RFC 3339",
		})
		return
	}

	result, err := h.useCase.Validate(r.Context(), useCaseReq)
	if err != nil {
		h.logger.Error("POST /bookings/validate - failed to validate booking: station=%s, slot=%s, error=%v",
			req.StationID, req.SlotID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &ValidateBookingResponse{
		IsValid:      result.IsValid,
		ErrorMessage: result.ErrorMessage,
	})
}
