package validate_qr

import (
	"context"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
	"github.com/evcsm/EVCS-BookingService/internal/service/qrcode"
)

// BookingRepository is the bookings storage interface.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}

// QRService decodes QR payloads.
type QRService interface {
	Decode(encoded string) (qrcode.Payload, error)
}

// TimeProvider supplies the current time (swappable in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
