package update_slot

import (
	"context"

	"github.com/evcsm/EVCS-BookingService/internal/service/slots/models"
)

type SlotService interface {
	UpdateSlot(ctx context.Context, slotID string, req *models.UpdateSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
