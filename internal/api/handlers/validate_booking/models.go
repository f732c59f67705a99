package validate_booking

import (
	"fmt"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/api/middleware"
	"github.com/evcsm/EVCS-BookingService/internal/domain"
	createBooking "github.com/evcsm/EVCS-BookingService/internal/usecase/create_booking"
)

// ValidateBookingRequest is the POST /bookings/validate body. It mirrors the
// creation body so a client can validate exactly what it is about to submit.
type ValidateBookingRequest struct {
	CustomerNic          string  `json:"customerNic"`
	CustomerName         string  `json:"customerName"`
	CustomerEmail        string  `json:"customerEmail"`
	CustomerPhone        string  `json:"customerPhone"`
	StationID            string  `json:"stationId"`
	SlotID               string  `json:"slotId"`
	ReservationStartTime string  `json:"reservationStartTime"`
	DurationMinutes      int     `json:"durationMinutes"`
	EstimatedKWh         float64 `json:"estimatedKWh"`
	Notes                *string `json:"notes,omitempty"`
}

// ToUseCaseRequest converts the HTTP request to the use case model, with the
// same EV-owner NIC override the creation endpoint applies.
func (r *ValidateBookingRequest) ToUseCaseRequest(principal *middleware.Principal) (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.ReservationStartTime)
	if err != nil {
		return nil, fmt.Errorf("parse reservationStartTime: %w", err)
	}

	customerNic := r.CustomerNic
	if principal.Role == domain.RoleEVOwner {
		customerNic = principal.Nic
	}

	return &createBooking.Request{
		CustomerNic:          customerNic,
		CustomerName:         r.CustomerName,
		CustomerEmail:        r.CustomerEmail,
		CustomerPhone:        r.CustomerPhone,
		StationID:            r.StationID,
		SlotID:               r.SlotID,
		ReservationStartTime: start,
		DurationMinutes:      r.DurationMinutes,
		EstimatedKWh:         r.EstimatedKWh,
		Notes:                r.Notes,
		CreatedBy:            principal.UserID,
	}, nil
}

// ValidateBookingResponse is the POST /bookings/validate response body.
type ValidateBookingResponse struct {
	IsValid      bool   `json:"isValid"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}
