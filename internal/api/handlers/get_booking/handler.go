package get_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/evcsm/EVCS-BookingService/internal/api/handlers"
	"github.com/evcsm/EVCS-BookingService/internal/api/middleware"
	"github.com/evcsm/EVCS-BookingService/internal/domain"
	"github.com/evcsm/EVCS-BookingService/internal/service/bookings"
	"github.com/evcsm/EVCS-BookingService/internal/service/bookings/models"
)

const (
	msgBookingNotFound = "booking not found"
	msgAccessDenied    = "access denied"
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

// Handle GET /api/v1/bookings/{bookingId}
//
// A path segment starting with the booking-number prefix is treated as a
// booking number lookup, everything else as an id.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	bookingID := mux.Vars(r)["bookingId"]
	requester := models.Requester{
		UserID: principal.UserID,
		Role:   principal.Role,
		Nic:    principal.Nic,
	}

	var result *models.BookingResponse
	var err error
	if strings.HasPrefix(bookingID, domain.BookingNumberPrefix) {
		result, err = h.service.GetByBookingNumber(r.Context(), bookingID, requester)
	} else {
		result, err = h.service.GetByID(r.Context(), bookingID, requester)
	}

	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - booking %s not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - access denied for user=%s to %s", principal.UserID, bookingID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /bookings/{id} - failed to fetch booking %s: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
