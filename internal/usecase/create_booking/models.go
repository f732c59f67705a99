package create_booking

import (
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
)

// Request is the create-booking input.
type Request struct {
	CustomerNic   string // EV owner national identity card number
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	StationID string
	SlotID    string

	ReservationStartTime time.Time
	DurationMinutes      int
	EstimatedKWh         float64

	Notes     *string
	CreatedBy string // user id from the bearer token
}

// Response carries the created booking.
type Response struct {
	ID            string
	BookingNumber string

	CustomerNic   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	// Snapshots captured at creation time
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

	QRCode    *string
	QRPayload string // base64url document to render as a QR image
	Notes     *string

	CreatedAt time.Time
}

func toResponse(b *domain.Booking, qrPayload string) *Response {
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
		QRCode:               b.QRCode,
		QRPayload:            qrPayload,
		Notes:                b.Notes,
		CreatedAt:            b.CreatedAt,
	}
}
