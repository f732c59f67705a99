package update_booking

import (
	"fmt"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
)

// validateRequest validates the request input fields.
func validateRequest(req *Request) error {
	if req.BookingID == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	if req.CustomerNic == "" {
		return fmt.Errorf("%w: customerNic is required", ErrInvalidInput)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
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

// validateWindow checks the temporal rules for the new reservation window.
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

// validateAccess checks that the requester may modify this booking.
// Backoffice modifies any booking; an EV owner only their own.
func validateAccess(b *domain.Booking, role domain.UserRole, nic string) error {
	switch role {
	case domain.RoleBackoffice:
		return nil
	case domain.RoleEVOwner:
		if b.CustomerNic == nic {
			return nil
		}
		return ErrAccessDenied
	default:
		return ErrAccessDenied
	}
}
