package update_booking

import (
	"fmt"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/api/middleware"
	"github.com/evcsm/EVCS-BookingService/internal/domain"
	updateBooking "github.com/evcsm/EVCS-BookingService/internal/usecase/update_booking"
)

// UpdateBookingRequest is the PUT /bookings/{bookingId} body.
type UpdateBookingRequest struct {
	CustomerNic          string  `json:"customerNic"`
	CustomerName         string  `json:"customerName"`
	CustomerEmail        string  `json:"customerEmail"`
	CustomerPhone        string  `json:"customerPhone"`
	ReservationStartTime string  `json:"reservationStartTime"`
	DurationMinutes      int     `json:"durationMinutes"`
	EstimatedKWh         float64 `json:"estimatedKWh"`
	Notes                *string `json:"notes,omitempty"`
}

// ToUseCaseRequest converts the HTTP request to the use case model.
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID string, principal *middleware.Principal) (*updateBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.ReservationStartTime)
	if err != nil {
		return nil, fmt.Errorf("parse reservationStartTime: %w", err)
	}

	customerNic := r.CustomerNic
	if principal.Role == domain.RoleEVOwner {
		customerNic = principal.Nic
	}

	return &updateBooking.Request{
		BookingID:            bookingID,
		CustomerNic:          customerNic,
		CustomerName:         r.CustomerName,
		CustomerEmail:        r.CustomerEmail,
		CustomerPhone:        r.CustomerPhone,
		ReservationStartTime: start,
		DurationMinutes:      r.DurationMinutes,
		EstimatedKWh:         r.EstimatedKWh,
		Notes:                r.Notes,
		RequesterRole:        principal.Role,
		RequesterNic:         principal.Nic,
	}, nil
}

// UpdateBookingResponse is the PUT /bookings/{bookingId} response body.
type UpdateBookingResponse struct {
	ID            string `json:"id"`
	BookingNumber string `json:"bookingNumber"`

	CustomerNic   string `json:"customerNic"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`

	StationID   string `json:"stationId"`
	StationName string `json:"stationName"`
	SlotID      string `json:"slotId"`
	SlotCode    string `json:"slotCode"`

	ReservationStartTime time.Time `json:"reservationStartTime"`
	ReservationEndTime   time.Time `json:"reservationEndTime"`
	DurationMinutes      int       `json:"durationMinutes"`
	Status               string    `json:"status"`

	PricePerKWh  float64 `json:"pricePerKWh"`
	EstimatedKWh float64 `json:"estimatedKWh"`
	TotalAmount  float64 `json:"totalAmount"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FromUseCaseResponse converts the use case result to the HTTP response.
func FromUseCaseResponse(r *updateBooking.Response) *UpdateBookingResponse {
	return &UpdateBookingResponse{
		ID:                   r.ID,
		BookingNumber:        r.BookingNumber,
		CustomerNic:          r.CustomerNic,
		CustomerName:         r.CustomerName,
		CustomerEmail:        r.CustomerEmail,
		CustomerPhone:        r.CustomerPhone,
		StationID:            r.StationID,
		StationName:          r.StationName,
		SlotID:               r.SlotID,
		SlotCode:             r.SlotCode,
		ReservationStartTime: r.ReservationStartTime,
		ReservationEndTime:   r.ReservationEndTime,
		DurationMinutes:      r.DurationMinutes,
		Status:               r.Status,
		PricePerKWh:          r.PricePerKWh,
		EstimatedKWh:         r.EstimatedKWh,
		TotalAmount:          r.TotalAmount,
		Notes:                r.Notes,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}
