package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	stationRepo "github.com/evcsm/EVCS-BookingService/internal/infra/storage/station"
)

// ValidationResult is the dry-run verdict for a prospective booking.
type ValidationResult struct {
	IsValid      bool
	ErrorMessage string
}

func notValid(message string) *ValidationResult {
	return &ValidationResult{IsValid: false, ErrorMessage: message}
}

// Validate runs the creation rule checks without writing anything. The
// verdict is advisory only: Execute re-runs the same checks inside a
// serializable transaction, so a positive answer here can still lose the
// race to a concurrent booking.
func (uc *UseCase) Validate(ctx context.Context, req *Request) (*ValidationResult, error) {
	uc.logger.Info("ValidateBooking: station=%s, slot=%s, start=%s",
		req.StationID, req.SlotID, req.ReservationStartTime.Format(time.RFC3339))

	// 1. Input and temporal rules
	if err := validateRequest(req); err != nil {
		return notValid(err.Error()), nil
	}

	now := uc.timeProvider.Now()
	if err := validateWindow(req.ReservationStartTime, now); err != nil {
		switch {
		case errors.Is(err, ErrReservationInPast):
			return notValid("reservation must start in the future"), nil
		case errors.Is(err, ErrDateTooFarInFuture):
			return notValid("reservation date is too far in the future"), nil
		default:
			return notValid(err.Error()), nil
		}
	}

	end := req.ReservationStartTime.Add(time.Duration(req.DurationMinutes) * time.Minute)

	// 2. Station and slot must exist and match
	if _, err := uc.stationRepo.GetStationByID(ctx, req.StationID); err != nil {
		if errors.Is(err, stationRepo.ErrStationNotFound) {
			return notValid("station not found"), nil
		}
		uc.logger.Error("ValidateBooking: failed to get station id=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}

	slot, err := uc.stationRepo.GetSlotByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, stationRepo.ErrSlotNotFound) {
			return notValid("slot not found"), nil
		}
		uc.logger.Error("ValidateBooking: failed to get slot id=%s: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}
	if slot.StationID != req.StationID {
		return notValid("slot not found"), nil
	}

	// 3. Availability, read without locks
	overlapping, err := uc.bookingRepo.CountOverlapping(ctx, req.SlotID, req.ReservationStartTime, end, nil)
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to count overlapping bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
	}
	if overlapping > 0 {
		return notValid("the selected slot is not available for this window"), nil
	}

	return &ValidationResult{IsValid: true}, nil
}
