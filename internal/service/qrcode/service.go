// Package qrcode generates and decodes booking QR payloads. The payload is a
// base64url-encoded JSON document rendered client-side into a scannable image;
// this service only deals with the encoded text.
package qrcode

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Payload is the document embedded in a booking QR code. Station operators
// scan it at check-in and the validation endpoint cross-checks every field
// against the stored booking.
type Payload struct {
	BookingID       string `json:"bookingId"`
	EvOwnerNic      string `json:"evOwnerNic"`
	StationID       string `json:"stationId"`
	ReservationDate string `json:"reservationDate"`
}

// Service encodes and decodes QR payloads.
type Service struct{}

// NewService creates a QR code service.
func NewService() *Service {
	return &Service{}
}

// Encode serializes the payload to base64url-encoded JSON.
func (s *Service) Encode(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("qrcode: Encode - marshal payload: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode parses a base64url-encoded JSON payload.
func (s *Service) Decode(encoded string) (Payload, error) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Payload{}, fmt.Errorf("qrcode: Decode - decode base64: %w", err)
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("qrcode: Decode - unmarshal payload: %w", err)
	}
	return p, nil
}

// Token builds the opaque reference stored on the booking row alongside the
// payload, unique per generation.
func (s *Service) Token(bookingNumber string, at time.Time) string {
	return fmt.Sprintf("QR_%s_%d", bookingNumber, at.UnixNano())
}
