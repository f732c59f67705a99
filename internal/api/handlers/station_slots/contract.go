package station_slots

import (
	"context"

	"github.com/evcsm/EVCS-BookingService/internal/service/slots/models"
)

type SlotService interface {
	ListByStation(ctx context.Context, stationID string) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
