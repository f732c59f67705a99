package booking

import (
	"context"
	"database/sql"

	"github.com/evcsm/EVCS-BookingService/pkg/dbmetrics"
)

// Database interfaces are shared with pkg/dbmetrics so the repository works
// both with a plain *sql.DB and the instrumented wrapper.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner starts transactions. Satisfied by *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
