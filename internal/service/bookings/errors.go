package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied is returned when the requester may not see or act on the booking.
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel is returned when the booking status forbids cancellation.
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrTooLateToCancel is returned when the cancellation cutoff has passed.
	ErrTooLateToCancel = errors.New("too late to cancel this booking")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors.
	ErrInternal = errors.New("service: internal error")
)
