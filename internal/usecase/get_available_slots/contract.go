package get_available_slots

import (
	"context"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
)

// StationRepository is the stations and slots storage interface.
type StationRepository interface {
	GetStationByID(ctx context.Context, id string) (*domain.Station, error)
	ListSlotsByStation(ctx context.Context, stationID string) ([]*domain.Slot, error)
}

// BookingRepository is the bookings storage interface.
type BookingRepository interface {
	ListBookedSlotIDs(ctx context.Context, stationID string, start, end time.Time) ([]string, error)
}

// SlotsCache caches computed availability per station and window.
type SlotsCache interface {
	Get(ctx context.Context, stationID string, start, end time.Time) ([]*domain.Slot, error)
	Set(ctx context.Context, stationID string, start, end time.Time, slots []*domain.Slot) error
}

// Logger is the logging interface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
