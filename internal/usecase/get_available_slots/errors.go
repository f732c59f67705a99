package get_available_slots

import "errors"

var (
	// ErrStationNotFound is returned when the station does not exist.
	ErrStationNotFound = errors.New("get_available_slots: station not found")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal is returned on internal use case errors.
	ErrInternal = errors.New("get_available_slots: internal error")
)
