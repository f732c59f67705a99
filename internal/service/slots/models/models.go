// Package models holds the request/response models of the slots service.
package models

import (
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
)

// SlotResponse is the external representation of a slot.
type SlotResponse struct {
	ID            string    `json:"id"`
	StationID     string    `json:"stationId"`
	SlotCode      string    `json:"slotCode"`
	ConnectorType string    `json:"connectorType"`
	PowerRatingKW int       `json:"powerRatingKW"`
	PricePerKWh   float64   `json:"pricePerKWh"`
	SlotStatus    string    `json:"slotStatus"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SlotListResponse is the slot inventory of a station.
type SlotListResponse struct {
	StationID string          `json:"stationId"`
	Slots     []*SlotResponse `json:"slots"`
}

// CreateSlotRequest carries the new slot definition.
type CreateSlotRequest struct {
	StationID     string
	SlotCode      string
	ConnectorType string
	PowerRatingKW int
	PricePerKWh   float64
}

// UpdateSlotRequest carries the mutable slot fields.
type UpdateSlotRequest struct {
	SlotCode      string
	ConnectorType string
	PowerRatingKW int
	PricePerKWh   float64
}

// FromDomainSlot converts a domain slot to its external representation.
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:            s.ID,
		StationID:     s.StationID,
		SlotCode:      s.SlotCode,
		ConnectorType: string(s.ConnectorType),
		PowerRatingKW: s.PowerRatingKW,
		PricePerKWh:   s.PricePerKWh,
		SlotStatus:    string(s.SlotStatus),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// FromDomainSlotList converts a slot inventory to the external envelope.
func FromDomainSlotList(stationID string, slots []*domain.Slot) *SlotListResponse {
	items := make([]*SlotResponse, 0, len(slots))
	for _, s := range slots {
		items = append(items, FromDomainSlot(s))
	}
	return &SlotListResponse{StationID: stationID, Slots: items}
}
