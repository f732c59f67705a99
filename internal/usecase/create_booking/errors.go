package create_booking

import "errors"

var (
	// ErrStationNotFound is returned when the station does not exist.
	ErrStationNotFound = errors.New("create_booking: station not found")

	// ErrSlotNotFound is returned when the slot does not exist or belongs to another station.
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrReservationInPast is returned when the reservation start is not strictly in the future.
	ErrReservationInPast = errors.New("create_booking: reservation must start in the future")

	// ErrDateTooFarInFuture is returned when the reservation start exceeds the booking horizon.
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrSlotNotAvailable is returned when the slot is already booked for an overlapping window.
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal is returned on internal use case errors.
	ErrInternal = errors.New("create_booking: internal error")
)
