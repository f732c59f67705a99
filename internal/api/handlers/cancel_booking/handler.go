package cancel_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/evcsm/EVCS-BookingService/internal/api/handlers"
	"github.com/evcsm/EVCS-BookingService/internal/api/middleware"
	"github.com/evcsm/EVCS-BookingService/internal/service/bookings"
	"github.com/evcsm/EVCS-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgBookingNotFound    = "booking not found"
	msgAccessDenied       = "access denied"
	msgCannotCancel       = "booking cannot be cancelled"
	msgTooLateToCancel    = "bookings can only be cancelled at least 12 hours before the reservation"
)

// CancelBookingRequest is the POST /bookings/{bookingId}/cancel body.
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

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

// Handle POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	bookingID := mux.Vars(r)["bookingId"]

	// The body is optional, cancellation without a reason is fine.
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/cancel - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.service.Cancel(r.Context(), bookingID, &models.CancelBookingRequest{
		Reason: req.Reason,
		Requester: models.Requester{
			UserID: principal.UserID,
			Role:   principal.Role,
			Nic:    principal.Nic,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel - booking %s not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/cancel - access denied for user=%s to %s", principal.UserID, bookingID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("POST /bookings/{id}/cancel - booking %s cannot be cancelled", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, bookings.ErrTooLateToCancel):
			h.logger.Warn("POST /bookings/{id}/cancel - too late to cancel booking %s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgTooLateToCancel)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - failed to cancel booking %s: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - booking cancelled: id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
