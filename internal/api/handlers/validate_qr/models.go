package validate_qr

import (
	"time"

	validateQR "github.com/evcsm/EVCS-BookingService/internal/usecase/validate_qr"
)

// ValidateQRRequest is the POST /bookings/validateQR body.
type ValidateQRRequest struct {
	QRPayload string `json:"qrPayload"`
	StationID string `json:"stationId"`
}

// BookingSummary is the booking detail shown on a successful scan.
type BookingSummary struct {
	ID                   string    `json:"id"`
	BookingNumber        string    `json:"bookingNumber"`
	CustomerNic          string    `json:"customerNic"`
	CustomerName         string    `json:"customerName"`
	StationID            string    `json:"stationId"`
	StationName          string    `json:"stationName"`
	SlotCode             string    `json:"slotCode"`
	ReservationStartTime time.Time `json:"reservationStartTime"`
	ReservationEndTime   time.Time `json:"reservationEndTime"`
	Status               string    `json:"status"`
	TotalAmount          float64   `json:"totalAmount"`
}

// ValidateQRResponse is the validation verdict. The endpoint answers 200 for
// failed checks too; errorCode tells the operator terminal what went wrong.
type ValidateQRResponse struct {
	IsValid   bool            `json:"isValid"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"errorCode,omitempty"`
	Booking   *BookingSummary `json:"booking,omitempty"`
}

// FromUseCaseResponse converts the use case result to the HTTP response.
func FromUseCaseResponse(r *validateQR.Response) *ValidateQRResponse {
	resp := &ValidateQRResponse{
		IsValid:   r.IsValid,
		Message:   r.Message,
		ErrorCode: r.ErrorCode,
	}
	if r.Booking != nil {
		resp.Booking = &BookingSummary{
			ID:                   r.Booking.ID,
			BookingNumber:        r.Booking.BookingNumber,
			CustomerNic:          r.Booking.CustomerNic,
			CustomerName:         r.Booking.CustomerName,
			StationID:            r.Booking.StationID,
			StationName:          r.Booking.StationName,
			SlotCode:             r.Booking.SlotCode,
			ReservationStartTime: r.Booking.ReservationStartTime,
			ReservationEndTime:   r.Booking.ReservationEndTime,
			Status:               r.Booking.Status,
			TotalAmount:          r.Booking.TotalAmount,
		}
	}
	return resp
}
