package qrcode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	svc := NewService()

	payload := Payload{
		BookingID:       "b-1",
		EvOwnerNic:      "991234567V",
		StationID:       "st-1",
		ReservationDate: "2025-06-01T10:00:00Z",
	}

	encoded, err := svc.Encode(payload)
	require.NoError(t, err)
	assert.NotContains(t, encoded, "=", "payload should be unpadded base64url")

	decoded, err := svc.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	svc := NewService()

	_, err := svc.Decode("!!not-base64!!")
	assert.Error(t, err)

	// Valid base64 but not JSON.
	_, err = svc.Decode("bm90LWpzb24")
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	svc := NewService()

	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	token := svc.Token("BK202506010001", at)

	assert.Equal(t, "QR_BK202506010001_1748772000000000000", token)

	// Tokens differ per generation time.
	assert.NotEqual(t, token, svc.Token("BK202506010001", at.Add(time.Nanosecond)))
}
