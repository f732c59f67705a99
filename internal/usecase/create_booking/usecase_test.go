package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
	stationRepo "github.com/evcsm/EVCS-BookingService/internal/infra/storage/station"
	"github.com/evcsm/EVCS-BookingService/internal/service/qrcode"
	"github.com/evcsm/EVCS-BookingService/pkg/ptr"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type fakeTime struct{ now time.Time }

func (f fakeTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	overlapping int64
	seq         int64
	created     *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = "booking-1"
	b.CreatedAt = testNow
	f.created = b
	return b, nil
}

func (f *fakeBookingRepo) CountOverlapping(_ context.Context, _ string, _, _ time.Time, _ *string) (int64, error) {
	return f.overlapping, nil
}

func (f *fakeBookingRepo) NextBookingSequence(_ context.Context, _ time.Time) (int64, error) {
	f.seq++
	return f.seq, nil
}

type fakeStationRepo struct {
	station *domain.Station
	slot    *domain.Slot
}

func (f *fakeStationRepo) GetStationByID(_ context.Context, id string) (*domain.Station, error) {
	if f.station == nil || f.station.ID != id {
		return nil, stationRepo.ErrStationNotFound
	}
	return f.station, nil
}

func (f *fakeStationRepo) GetSlotByID(_ context.Context, id string) (*domain.Slot, error) {
	if f.slot == nil || f.slot.ID != id {
		return nil, stationRepo.ErrSlotNotFound
	}
	return f.slot, nil
}

type fakeCache struct{ invalidated []string }

func (f *fakeCache) InvalidateStation(_ context.Context, stationID string) error {
	f.invalidated = append(f.invalidated, stationID)
	return nil
}

func newTestUseCase(bookingRepo *fakeBookingRepo, stations *fakeStationRepo, cache *fakeCache) *UseCase {
	uc := NewUseCase(bookingRepo, stations, cache, qrcode.NewService(), fakeTxManager{}, nopLogger{})
	uc.timeProvider = fakeTime{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		CustomerNic:          "991234567V",
		CustomerName:         "Nimal Perera",
		CustomerEmail:        "nimal@example.com",
		CustomerPhone:        "+94771234567",
		StationID:            "st-1",
		SlotID:               "slot-1",
		ReservationStartTime: testNow.Add(24 * time.Hour),
		DurationMinutes:      60,
		EstimatedKWh:         40,
		CreatedBy:            "user-1",
	}
}

func testFixtures() (*fakeBookingRepo, *fakeStationRepo, *fakeCache) {
	return &fakeBookingRepo{},
		&fakeStationRepo{
			station: &domain.Station{ID: "st-1", StationName: "Colombo Central"},
			slot: &domain.Slot{
				ID:            "slot-1",
				StationID:     "st-1",
				SlotCode:      "A1",
				ConnectorType: domain.ConnectorCCS2SinglePort,
				PowerRatingKW: 50,
				PricePerKWh:   0.45,
				SlotStatus:    domain.SlotAvailable,
			},
		},
		&fakeCache{}
}

func TestExecuteCreatesConfirmedBooking(t *testing.T) {
	bookings, stations, cache := testFixtures()
	uc := newTestUseCase(bookings, stations, cache)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "booking-1", resp.ID)
	assert.Equal(t, "BK202506010001", resp.BookingNumber)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// Station, slot and price snapshots.
	assert.Equal(t, "Colombo Central", resp.StationName)
	assert.Equal(t, "A1", resp.SlotCode)
	assert.Equal(t, 0.45, resp.PricePerKWh)
	assert.InDelta(t, 18.0, resp.TotalAmount, 1e-9)

	assert.Equal(t, resp.ReservationStartTime.Add(time.Hour), resp.ReservationEndTime)

	require.NotNil(t, resp.QRCode)
	assert.Contains(t, *resp.QRCode, "QR_BK202506010001_")
	assert.NotEmpty(t, resp.QRPayload)

	assert.Equal(t, []string{"st-1"}, cache.invalidated)
}

func TestExecuteQRPayloadDecodes(t *testing.T) {
	bookings, stations, cache := testFixtures()
	uc := newTestUseCase(bookings, stations, cache)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	payload, err := qrcode.NewService().Decode(resp.QRPayload)
	require.NoError(t, err)
	assert.Equal(t, "booking-1", payload.BookingID)
	assert.Equal(t, "991234567V", payload.EvOwnerNic)
	assert.Equal(t, "st-1", payload.StationID)
}

func TestExecuteRejectsPastStart(t *testing.T) {
	bookings, stations, cache := testFixtures()
	uc := newTestUseCase(bookings, stations, cache)

	req := validRequest()
	req.ReservationStartTime = testNow.Add(-time.Hour)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrReservationInPast)

	// Exactly now is not strictly in the future either.
	req.ReservationStartTime = testNow
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrReservationInPast)
}

func TestExecuteRejectsStartBeyondHorizon(t *testing.T) {
	bookings, stations, cache := testFixtures()
	uc := newTestUseCase(bookings, stations, cache)

	req := validRequest()
	req.ReservationStartTime = testNow.AddDate(0, 0, domain.BookingHorizonDays).Add(time.Minute)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	// Exactly on the horizon is allowed.
	req.ReservationStartTime = testNow.AddDate(0, 0, domain.BookingHorizonDays)
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecuteRejectsUnknownStation(t *testing.T) {
	bookings, stations, cache := testFixtures()
	uc := newTestUseCase(bookings, stations, cache)

	req := validRequest()
	req.StationID = "st-unknown"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestExecuteRejectsSlotOfAnotherStation(t *testing.T) {
	bookings, stations, cache := testFixtures()
	stations.slot.StationID = "st-2"
	uc := newTestUseCase(bookings, stations, cache)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecuteRejectsOverlappingWindow(t *testing.T) {
	bookings, stations, cache := testFixtures()
	bookings.overlapping = 1
	uc := newTestUseCase(bookings, stations, cache)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, cache.invalidated)
}

func TestExecuteValidatesInput(t *testing.T) {
	bookings, stations, cache := testFixtures()
	uc := newTestUseCase(bookings, stations, cache)

	mutations := []func(*Request){
		func(r *Request) { r.CustomerNic = "" },
		func(r *Request) { r.CustomerName = "" },
		func(r *Request) { r.StationID = "" },
		func(r *Request) { r.SlotID = "" },
		func(r *Request) { r.ReservationStartTime = time.Time{} },
		func(r *Request) { r.DurationMinutes = 0 },
		func(r *Request) { r.EstimatedKWh = 0 },
	}

	for _, mutate := range mutations {
		req := validRequest()
		mutate(req)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	// Notes stay optional.
	req := validRequest()
	req.Notes = ptr.Ptr("charge to 80% only")
	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecuteTotalAmountIsExact(t *testing.T) {
	bookings, stations, cache := testFixtures()
	stations.slot.PricePerKWh = 25.5
	uc := newTestUseCase(bookings, stations, cache)

	req := validRequest()
	req.EstimatedKWh = 10
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 255.0, resp.TotalAmount)
}

func TestValidateDryRun(t *testing.T) {
	bookings, stations, cache := testFixtures()
	uc := newTestUseCase(bookings, stations, cache)

	result, err := uc.Validate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.ErrorMessage)

	// Nothing was written and no cache was touched.
	assert.Nil(t, bookings.created)
	assert.Empty(t, cache.invalidated)
}

func TestValidateDryRunVerdicts(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*fakeBookingRepo, *fakeStationRepo, *Request)
	}{
		{"past start", func(_ *fakeBookingRepo, _ *fakeStationRepo, r *Request) {
			r.ReservationStartTime = testNow.Add(-time.Hour)
		}},
		{"beyond horizon", func(_ *fakeBookingRepo, _ *fakeStationRepo, r *Request) {
			r.ReservationStartTime = testNow.AddDate(0, 0, domain.BookingHorizonDays).Add(time.Minute)
		}},
		{"missing nic", func(_ *fakeBookingRepo, _ *fakeStationRepo, r *Request) {
			r.CustomerNic = ""
		}},
		{"unknown station", func(_ *fakeBookingRepo, _ *fakeStationRepo, r *Request) {
			r.StationID = "st-unknown"
		}},
		{"unknown slot", func(_ *fakeBookingRepo, _ *fakeStationRepo, r *Request) {
			r.SlotID = "slot-unknown"
		}},
		{"slot of another station", func(_ *fakeBookingRepo, stations *fakeStationRepo, _ *Request) {
			stations.slot.StationID = "st-2"
		}},
		{"window taken", func(bookings *fakeBookingRepo, _ *fakeStationRepo, _ *Request) {
			bookings.overlapping = 1
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bookings, stations, cache := testFixtures()
			req := validRequest()
			tc.mutate(bookings, stations, req)
			uc := newTestUseCase(bookings, stations, cache)

			result, err := uc.Validate(context.Background(), req)
			require.NoError(t, err)
			assert.False(t, result.IsValid)
			assert.NotEmpty(t, result.ErrorMessage)
			assert.Nil(t, bookings.created)
		})
	}
}

func TestExecuteBookingNumbersIncrementWithinDay(t *testing.T) {
	bookings, stations, cache := testFixtures()
	uc := newTestUseCase(bookings, stations, cache)

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "BK202506010001", first.BookingNumber)
	assert.Equal(t, "BK202506010002", second.BookingNumber)
}
