package domain

import "time"

// ConnectorType identifies the physical connector configuration of a slot.
type ConnectorType string

const (
	ConnectorCHAdeMOCCS2DualPort ConnectorType = "chademo_ccs2_dualport"
	ConnectorCCS2SinglePort      ConnectorType = "ccs2_singleport"
	ConnectorCHAdeMOSinglePort   ConnectorType = "chademo_singleport"
	ConnectorType2               ConnectorType = "type2"
)

// SlotStatus is the informational availability flag of a slot. It is set
// manually (maintenance) and is never consulted by booking conflict checks;
// time-window overlap against live bookings is the sole source of truth.
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotOccupied    SlotStatus = "occupied"
	SlotMaintenance SlotStatus = "maintenance"
)

// Slot is a single chargeable connector position within a station.
type Slot struct {
	ID            string
	StationID     string
	SlotCode      string
	ConnectorType ConnectorType
	PowerRatingKW int
	PricePerKWh   float64
	SlotStatus    SlotStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsValidCombination validates a connector/power pairing against the fixed
// hardware compatibility table. Used when slots are created or updated;
// bookings assume slots are pre-validated.
func IsValidCombination(connector ConnectorType, powerKW int) bool {
	switch connector {
	case ConnectorCHAdeMOCCS2DualPort:
		return powerKW == 50 || powerKW == 100
	case ConnectorCCS2SinglePort:
		return powerKW == 30 || powerKW == 50 || powerKW == 100
	case ConnectorCHAdeMOSinglePort:
		return powerKW == 30 || powerKW == 50
	case ConnectorType2:
		return powerKW == 22
	default:
		return false
	}
}

// ValidSlotStatus reports whether s is one of the known slot statuses.
func ValidSlotStatus(s SlotStatus) bool {
	return s == SlotAvailable || s == SlotOccupied || s == SlotMaintenance
}
