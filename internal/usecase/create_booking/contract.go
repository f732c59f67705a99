package create_booking

import (
	"context"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
	"github.com/evcsm/EVCS-BookingService/internal/service/qrcode"
)

// BookingRepository is the bookings storage interface.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountOverlapping(ctx context.Context, slotID string, start, end time.Time, excludeID *string) (int64, error)
	NextBookingSequence(ctx context.Context, day time.Time) (int64, error)
}

// StationRepository is the stations and slots storage interface.
type StationRepository interface {
	GetStationByID(ctx context.Context, id string) (*domain.Station, error)
	GetSlotByID(ctx context.Context, id string) (*domain.Slot, error)
}

// SlotsCache invalidates cached availability after a booking lands.
type SlotsCache interface {
	InvalidateStation(ctx context.Context, stationID string) error
}

// QRService builds QR payloads and tokens for confirmed bookings.
type QRService interface {
	Encode(p qrcode.Payload) (string, error)
	Token(bookingNumber string, at time.Time) string
}

// TransactionManager runs the availability check and insert atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
