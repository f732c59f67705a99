package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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
	response *createBooking.Response
	err      error
	lastReq  *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func requestBody() map[string]interface{} {
	return map[string]interface{}{
		"customerNic":          "991234567V",
		"customerName":         "Nimal Perera",
		"customerEmail":        "nimal@example.com",
		"customerPhone":        "+94771234567",
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

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(raw))
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

func TestHandleCreatesBooking(t *testing.T) {
	uc := &fakeUseCase{response: &createBooking.Response{
		ID:            "booking-1",
		BookingNumber: "BK202506010001",
		Status:        string(domain.StatusConfirmed),
		CustomerNic:   "991234567V",
		StationID:     "st-1",
		SlotID:        "slot-1",
		QRPayload:     "payload",
		CreatedAt:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}}

	rec := doRequest(t, uc, requestBody(), ownerPrincipal())

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "BK202506010001", resp.BookingNumber)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "payload", resp.QRPayload)
}

func TestHandleOwnerNicOverridesBody(t *testing.T) {
	uc := &fakeUseCase{response: &createBooking.Response{}}

	body := requestBody()
	body["customerNic"] = "880000000V"
	rec := doRequest(t, uc, body, ownerPrincipal())

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, "991234567V", uc.lastReq.CustomerNic)
	assert.Equal(t, "owner-1", uc.lastReq.CreatedBy)
}

func TestHandleBackofficeBooksForAnyNic(t *testing.T) {
	uc := &fakeUseCase{response: &createBooking.Response{}}

	body := requestBody()
	body["customerNic"] = "880000000V"
	rec := doRequest(t, uc, body, &middleware.Principal{UserID: "admin-1", Role: domain.RoleBackoffice})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, "880000000V", uc.lastReq.CustomerNic)
}

func TestHandleRequiresPrincipal(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, requestBody(), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader([]byte("{not json")))
	req = req.WithContext(middleware.WithPrincipal(req.Context(), ownerPrincipal()))
	rec := httptest.NewRecorder()

	NewHandler(&fakeUseCase{}, nopLogger{}).Handle(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRejectsBadStartTime(t *testing.T) {
	body := requestBody()
	body["reservationStartTime"] = "tomorrow at ten"
	rec := doRequest(t, &fakeUseCase{}, body, ownerPrincipal())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"slot conflict", createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"station missing", createBooking.ErrStationNotFound, http.StatusNotFound},
		{"slot missing", createBooking.ErrSlotNotFound, http.StatusNotFound},
		{"past start", createBooking.ErrReservationInPast, http.StatusBadRequest},
		{"beyond horizon", createBooking.ErrDateTooFarInFuture, http.StatusBadRequest},
		{"invalid input", createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tc.err}, requestBody(), ownerPrincipal())
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}
