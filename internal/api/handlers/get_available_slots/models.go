package get_available_slots

import (
	"fmt"
	"net/url"
	"time"

	getAvailableSlots "github.com/evcsm/EVCS-BookingService/internal/usecase/get_available_slots"
)

// parseQuery converts the availability query string to the use case request.
func parseQuery(query url.Values) (*getAvailableSlots.Request, error) {
	stationID := query.Get("stationId")

	start, err := time.Parse(time.RFC3339, query.Get("startTime"))
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}

	end, err := time.Parse(time.RFC3339, query.Get("endTime"))
	if err != nil {
		return nil, fmt.Errorf("invalid endTime: %w", err)
	}

	return &getAvailableSlots.Request{
		StationID: stationID,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// AvailableSlotsResponse is the GET /bookings/available-slots response body.
type AvailableSlotsResponse struct {
	StationID      string     `json:"stationId"`
	StationName    string     `json:"stationName"`
	StartTime      time.Time  `json:"startTime"`
	EndTime        time.Time  `json:"endTime"`
	AvailableSlots []SlotInfo `json:"availableSlots"`
}

// SlotInfo is one bookable slot.
type SlotInfo struct {
	ID            string  `json:"id"`
	SlotCode      string  `json:"slotCode"`
	ConnectorType string  `json:"connectorType"`
	PowerRatingKW int     `json:"powerRatingKW"`
	PricePerKWh   float64 `json:"pricePerKWh"`
	SlotStatus    string  `json:"slotStatus"`
}

// FromUseCaseResponse converts the use case result to the HTTP response.
func FromUseCaseResponse(r *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotInfo, 0, len(r.AvailableSlots))
	for _, s := range r.AvailableSlots {
		slots = append(slots, SlotInfo{
			ID:            s.ID,
			SlotCode:      s.SlotCode,
			ConnectorType: s.ConnectorType,
			PowerRatingKW: s.PowerRatingKW,
			PricePerKWh:   s.PricePerKWh,
			SlotStatus:    s.SlotStatus,
		})
	}
	return &AvailableSlotsResponse{
		StationID:      r.StationID,
		StationName:    r.StationName,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		AvailableSlots: slots,
	}
}
