package station

import (
	"github.com/evcsm/EVCS-BookingService/pkg/dbmetrics"
)

// Database interfaces are shared with pkg/dbmetrics so the repository works
// both with a plain *sql.DB and the instrumented wrapper.
type DBExecutor = dbmetrics.DBExecutor
