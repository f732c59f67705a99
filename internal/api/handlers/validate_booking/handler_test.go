package validate_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcsm/EVCS-BookingService/internal/api/middleware"
	"github.com/evcsm/EVCS-BookingService/internal/domain"
	createBooking "github.com/evcsm/EVCS-BookingService/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	result  *createBooking.ValidationResult
	err     error
	lastReq *createBooking.Request
}

func (f *fakeUseCase) Validate(_ context.Context, req *createBooking.Request) (*createBooking.ValidationResult, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func requestBody() map[string]interface{} {
	return map[string]interface{}{
		"customerNic":          "991234567V",
		"customerName":         "Nimal Perera",
		"stationId":            "st-1",
		"slotId":               "slot-1",
		"reservationStartTime": "2025-06-02T10:00:00Z",
		"durationMinutes":      60,
		"estimatedKWh":         40,
	}
}

func doRequest(t *testing.T, uc *fakeUseCase, body interface{}, principal *middleware.Principal) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/validate", bytes.NewReader(raw))
	if principal != nil {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), principal))
	}

	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func ownerPrincipal() *middleware.Principal {
	return &middleware.Principal{UserID: "owner-1", Role: domain.RoleEVOwner, Nic: "991234567V"}
}

func TestHandleReturnsVerdict(t *testing.T) {
	uc := &fakeUseCase{result: &createBooking.ValidationResult{IsValid: true}}

	rec := doRequest(t, uc, requestBody(), ownerPrincipal())
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ValidateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsValid)
	assert.Empty(t, resp.ErrorMessage)
}

func TestHandleNegativeVerdictIsStill200(t *testing.T) {
	uc := &fakeUseCase{result: &createBooking.ValidationResult{
		IsValid:      false,
		ErrorMessage: "the selected slot is not available for this window",
	}}

	rec := doRequest(t, uc, requestBody(), ownerPrincipal())
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ValidateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.IsValid)
	assert.NotEmpty(t, resp.ErrorMessage)
}

func TestHandleBadTimestampIsAVerdict(t *testing.T) {
	body := requestBody()
	body["reservationStartTime"] = "next tuesday"
	rec := doRequest(t, &fakeUseCase{}, body, ownerPrincipal())

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ValidateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.IsValid)
}

func TestHandleOwnerNicOverridesBody(t *testing.T) {
	uc := &fakeUseCase{result: &createBooking.ValidationResult{IsValid: true}}

	body := requestBody()
	body["customerNic"] = "880000000V"
	doRequest(t, uc, body, ownerPrincipal())

	require.NotNil(t, uc.lastReq)
	assert.Equal(t, "991234567V", uc.lastReq.CustomerNic)
}

func TestHandleRequiresPrincipal(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, requestBody(), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
