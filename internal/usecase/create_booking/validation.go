package create_booking

import (
	"fmt"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
)

// validateRequest validates the request input fields.
func validateRequest(req *Request) error {
	if req.CustomerNic == "" {
		return fmt.Errorf("%w: customerNic is required", ErrInvalidInput)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if req.StationID == "" {
		return fmt.Errorf("%w: stationId is required", ErrInvalidInput)
	}

	if req.SlotID == "" {
		return fmt.Errorf("%w: slotId is required", ErrInvalidInput)
	}

	if req.ReservationStartTime.IsZero() {
		return fmt.Errorf("%w: reservationStartTime is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	if req.EstimatedKWh <= 0 {
		return fmt.Errorf("%w: estimatedKWh must be positive", ErrInvalidInput)
	}

	return nil
}

// validateWindow checks the temporal booking rules: the reservation must
// start strictly in the future and within the booking horizon.
func validateWindow(start time.Time, now time.Time) error {
	if !start.After(now) {
		return ErrReservationInPast
	}

	horizon := now.AddDate(0, 0, domain.BookingHorizonDays)
	if start.After(horizon) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, domain.BookingHorizonDays)
	}

	return nil
}
