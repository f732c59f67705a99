package update_booking

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrAccessDenied is returned when the requester may not modify this booking.
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrBookingNotModifiable is returned when the booking status forbids modification.
	ErrBookingNotModifiable = errors.New("update_booking: booking can no longer be modified")

	// ErrTooLateToModify is returned when the modification cutoff before the
	// reservation start has already passed.
	ErrTooLateToModify = errors.New("update_booking: too late to modify this booking")

	// ErrReservationInPast is returned when the new reservation start is not strictly in the future.
	ErrReservationInPast = errors.New("update_booking: reservation must start in the future")

	// ErrDateTooFarInFuture is returned when the new reservation start exceeds the booking horizon.
	ErrDateTooFarInFuture = errors.New("update_booking: date is too far in the future")

	// ErrSlotNotAvailable is returned when the new window collides with another booking.
	ErrSlotNotAvailable = errors.New("update_booking: slot is not available")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal is returned on internal use case errors.
	ErrInternal = errors.New("update_booking: internal error")
)
