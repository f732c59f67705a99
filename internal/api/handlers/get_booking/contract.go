package get_booking

import (
	"context"

	"github.com/evcsm/EVCS-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id string, requester models.Requester) (*models.BookingResponse, error)
	GetByBookingNumber(ctx context.Context, number string, requester models.Requester) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
