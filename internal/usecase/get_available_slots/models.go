package get_available_slots

import (
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
)

// Request is the available-slots query for the [StartTime, EndTime) window.
type Request struct {
	StationID string
	StartTime time.Time
	EndTime   time.Time
}

// SlotInfo describes one bookable slot for the requested window.
type SlotInfo struct {
	ID            string
	SlotCode      string
	ConnectorType string
	PowerRatingKW int
	PricePerKWh   float64
	SlotStatus    string
}

// Response carries the slots free for the requested window.
type Response struct {
	StationID      string
	StationName    string
	StartTime      time.Time
	EndTime        time.Time
	AvailableSlots []SlotInfo
}

func toSlotInfos(slots []*domain.Slot) []SlotInfo {
	infos := make([]SlotInfo, 0, len(slots))
	for _, s := range slots {
		infos = append(infos, SlotInfo{
			ID:            s.ID,
			SlotCode:      s.SlotCode,
			ConnectorType: string(s.ConnectorType),
			PowerRatingKW: s.PowerRatingKW,
			PricePerKWh:   s.PricePerKWh,
			SlotStatus:    string(s.SlotStatus),
		})
	}
	return infos
}
