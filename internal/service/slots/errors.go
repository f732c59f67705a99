package slots

import "errors"

var (
	// ErrStationNotFound is returned when the station does not exist.
	ErrStationNotFound = errors.New("station not found")

	// ErrSlotNotFound is returned when the slot does not exist.
	ErrSlotNotFound = errors.New("slot not found")

	// ErrInvalidCombination is returned when the connector type and power
	// rating pair is not in the hardware compatibility table.
	ErrInvalidCombination = errors.New("invalid connector type and power rating combination")

	// ErrInvalidStatus is returned on an unknown slot status.
	ErrInvalidStatus = errors.New("invalid slot status")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors.
	ErrInternal = errors.New("service: internal error")
)
