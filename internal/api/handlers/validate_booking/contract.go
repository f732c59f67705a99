package validate_booking

import (
	"context"

	createBooking "github.com/evcsm/EVCS-BookingService/internal/usecase/create_booking"
)

type ValidateBookingUseCase interface {
	Validate(ctx context.Context, req *createBooking.Request) (*createBooking.ValidationResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
