package update_slot_availability

import (
	"context"

	"github.com/evcsm/EVCS-BookingService/internal/service/slots/models"
)

type SlotService interface {
	UpdateAvailability(ctx context.Context, slotID string, status string) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
