package create_booking

import (
	"fmt"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/api/middleware"
	"github.com/evcsm/EVCS-BookingService/internal/domain"
	createBooking "github.com/evcsm/EVCS-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest is the POST /bookings body.
type CreateBookingRequest struct {
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

// ToUseCaseRequest converts the HTTP request to the use case model. An EV
// owner always books for their own NIC, whatever the body says.
func (r *CreateBookingRequest) ToUseCaseRequest(principal *middleware.Principal) (*createBooking.Request, error) {
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

// CreateBookingResponse is the POST /bookings response body.
type CreateBookingResponse struct {
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

	QRCode    *string `json:"qrCode,omitempty"`
	QRPayload string  `json:"qrPayload"`
	Notes     *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// FromUseCaseResponse converts the use case result to the HTTP response.
func FromUseCaseResponse(r *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
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
		QRCode:               r.QRCode,
		QRPayload:            r.QRPayload,
		Notes:                r.Notes,
		CreatedAt:            r.CreatedAt,
	}
}
