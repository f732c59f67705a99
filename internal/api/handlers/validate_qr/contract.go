package validate_qr

import (
	"context"

	validateQR "github.com/evcsm/EVCS-BookingService/internal/usecase/validate_qr"
)

type ValidateQRUseCase interface {
	Execute(ctx context.Context, req *validateQR.Request) (*validateQR.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
