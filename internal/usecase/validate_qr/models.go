package validate_qr

import (
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
)

// Validation error codes returned to the scanning operator. Every failed
// check produces a result, never a transport error, so the operator terminal
// can always display a reason.
const (
	CodeBookingNotFound  = "BOOKING_NOT_FOUND"
	CodeInvalidCustomer  = "INVALID_CUSTOMER"
	CodeInvalidStation   = "INVALID_STATION"
	CodeInvalidStatus    = "INVALID_STATUS"
	CodeBookingNotActive = "BOOKING_NOT_ACTIVE"
	CodeBookingExpired   = "BOOKING_EXPIRED"
	CodeValidationError  = "VALIDATION_ERROR"
)

// Request is the QR validation input. StationID is the station the operator
// is scanning at; the booking must belong to it.
type Request struct {
	QRPayload string
	StationID string
}

// BookingSummary is the booking detail shown to the operator on a
// successful scan.
type BookingSummary struct {
	ID                   string
	BookingNumber        string
	CustomerNic          string
	CustomerName         string
	StationID            string
	StationName          string
	SlotCode             string
	ReservationStartTime time.Time
	ReservationEndTime   time.Time
	Status               string
	TotalAmount          float64
}

// Response is the validation verdict. IsValid false carries an ErrorCode and
// a human-readable message.
type Response struct {
	IsValid   bool
	Message   string
	ErrorCode string
	Booking   *BookingSummary
}

func invalid(code, message string) *Response {
	return &Response{IsValid: false, Message: message, ErrorCode: code}
}

func valid(b *domain.Booking) *Response {
	return &Response{
		IsValid: true,
		Message: "booking is valid",
		Booking: &BookingSummary{
			ID:                   b.ID,
			BookingNumber:        b.BookingNumber,
			CustomerNic:          b.CustomerNic,
			CustomerName:         b.CustomerName,
			StationID:            b.StationID,
			StationName:          b.StationName,
			SlotCode:             b.SlotCode,
			ReservationStartTime: b.ReservationStartTime,
			ReservationEndTime:   b.ReservationEndTime,
			Status:               string(b.Status),
			TotalAmount:          b.TotalAmount,
		},
	}
}
