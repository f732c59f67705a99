package update_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/evcsm/EVCS-BookingService/internal/api/handlers"
	"github.com/evcsm/EVCS-BookingService/internal/api/middleware"
	updateBooking "github.com/evcsm/EVCS-BookingService/internal/usecase/update_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStartTime   = "invalid reservationStartTime, expected RFC 3339"
	msgBookingNotFound    = "booking not found"
	msgAccessDenied       = "access denied"
	msgNotModifiable      = "booking can no longer be modified"
	msgTooLateToModify    = "bookings can only be modified at least 12 hours before the reservation"
	msgSlotNotAvailable   = "the selected slot is not available for this window"
	msgReservationInPast  = "reservation must start in the future"
	msgDateTooFar         = "reservation date is too far in the future"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	bookingID := mux.Vars(r)["bookingId"]

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, principal)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - booking %s not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{id} - access denied for user=%s to %s", principal.UserID, bookingID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, updateBooking.ErrBookingNotModifiable):
			h.logger.Warn("PUT /bookings/{id} - booking %s not modifiable", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotModifiable)

		case errors.Is(err, updateBooking.ErrTooLateToModify):
			h.logger.Warn("PUT /bookings/{id} - too late to modify booking %s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgTooLateToModify)

		case errors.Is(err, updateBooking.ErrSlotNotAvailable):
			h.logger.Warn("PUT /bookings/{id} - slot not available for booking %s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, updateBooking.ErrReservationInPast):
			h.logger.Warn("PUT /bookings/{id} - reservation in past for booking %s", bookingID)
			handlers.RespondBadRequest(w, msgReservationInPast)

		case errors.Is(err, updateBooking.ErrDateTooFarInFuture):
			h.logger.Warn("PUT /bookings/{id} - date too far in future for booking %s", bookingID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /bookings/{id} - failed to update booking %s: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - booking updated: id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
