package update_booking

import (
	"context"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
	"github.com/evcsm/EVCS-BookingService/internal/infra/storage/booking"
)

// BookingRepository is the bookings storage interface.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	CountOverlapping(ctx context.Context, slotID string, start, end time.Time, excludeID *string) (int64, error)
	Update(ctx context.Context, id string, fields booking.UpdateFields) error
}

// StationRepository resolves the slot for repricing.
type StationRepository interface {
	GetSlotByID(ctx context.Context, id string) (*domain.Slot, error)
}

// SlotsCache invalidates cached availability after a booking moves.
type SlotsCache interface {
	InvalidateStation(ctx context.Context, stationID string) error
}

// TransactionManager runs the availability re-check and update atomically.
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
