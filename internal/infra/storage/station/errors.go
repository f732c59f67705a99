package station

import "errors"

var (
	// ErrStationNotFound is returned when a station does not exist.
	ErrStationNotFound = errors.New("station.repository: station not found")

	// ErrSlotNotFound is returned when a slot does not exist.
	ErrSlotNotFound = errors.New("station.repository: slot not found")

	// ErrBuildQuery is returned when SQL query construction fails.
	ErrBuildQuery = errors.New("station.repository: failed to build query")

	// ErrExecQuery is returned when SQL query execution fails.
	ErrExecQuery = errors.New("station.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("station.repository: failed to scan row")
)
