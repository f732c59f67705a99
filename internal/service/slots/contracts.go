package slots

import (
	"context"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
	stationRepo "github.com/evcsm/EVCS-BookingService/internal/infra/storage/station"
)

// StationRepository is the stations and slots storage interface.
type StationRepository interface {
	GetStationByID(ctx context.Context, id string) (*domain.Station, error)
	GetSlotByID(ctx context.Context, id string) (*domain.Slot, error)
	ListSlotsByStation(ctx context.Context, stationID string) ([]*domain.Slot, error)
	CreateSlot(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	UpdateSlot(ctx context.Context, id string, fields stationRepo.SlotUpdateFields) error
	UpdateSlotStatus(ctx context.Context, id string, status domain.SlotStatus) error
}

// SlotsCache invalidates cached availability when the slot inventory changes.
type SlotsCache interface {
	InvalidateStation(ctx context.Context, stationID string) error
}

// Logger is the logging interface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
