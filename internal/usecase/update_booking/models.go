package update_booking

import (
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
)

// Request is the update-booking input. The slot and station of a booking are
// fixed; moving to another slot means cancelling and rebooking.
type Request struct {
	BookingID string

	CustomerNic   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	ReservationStartTime time.Time
	DurationMinutes      int
	EstimatedKWh         float64

	Notes *string

	// Requester identity from the bearer token, used for access checks.
	RequesterRole domain.UserRole
	RequesterNic  string
}

// Response carries the booking after the update.
type Response struct {
	ID            string
	BookingNumber string

	CustomerNic   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	StationID   string
	StationName string
	SlotID      string
	SlotCode    string

	ReservationStartTime time.Time
	ReservationEndTime   time.Time
	DurationMinutes      int
	Status               string

	PricePerKWh  float64
	EstimatedKWh float64
	TotalAmount  float64

	Notes *string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:                   b.ID,
		BookingNumber:        b.BookingNumber,
		CustomerNic:          b.CustomerNic,
		CustomerName:         b.CustomerName,
		CustomerEmail:        b.CustomerEmail,
		CustomerPhone:        b.CustomerPhone,
		StationID:            b.StationID,
		StationName:          b.StationName,
		SlotID:               b.SlotID,
		SlotCode:             b.SlotCode,
		ReservationStartTime: b.ReservationStartTime,
		ReservationEndTime:   b.ReservationEndTime,
		DurationMinutes:      b.DurationMinutes,
		Status:               string(b.Status),
		PricePerKWh:          b.PricePerKWh,
		EstimatedKWh:         b.EstimatedKWh,
		TotalAmount:          b.TotalAmount,
		Notes:                b.Notes,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}
