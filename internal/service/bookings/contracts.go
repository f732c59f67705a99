package bookings

import (
	"context"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
)

// BookingRepository is the bookings storage interface.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByBookingNumber(ctx context.Context, number string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, int64, error)
	Cancel(ctx context.Context, id string, reason *string) error
}

// StationRepository resolves operator scoping over stations.
type StationRepository interface {
	GetStationByID(ctx context.Context, id string) (*domain.Station, error)
	ListStationIDsByOperator(ctx context.Context, operatorID string) ([]string, error)
}

// SlotsCache invalidates cached availability after a cancellation.
type SlotsCache interface {
	InvalidateStation(ctx context.Context, stationID string) error
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
