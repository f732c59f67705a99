package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
	slotsCache "github.com/evcsm/EVCS-BookingService/internal/infra/cache/slots"
	stationRepo "github.com/evcsm/EVCS-BookingService/internal/infra/storage/station"
)

var windowStart = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeStationRepo struct {
	station *domain.Station
	slots   []*domain.Slot
}

func (f *fakeStationRepo) GetStationByID(_ context.Context, id string) (*domain.Station, error) {
	if f.station == nil || f.station.ID != id {
		return nil, stationRepo.ErrStationNotFound
	}
	return f.station, nil
}

func (f *fakeStationRepo) ListSlotsByStation(_ context.Context, _ string) ([]*domain.Slot, error) {
	return f.slots, nil
}

type fakeBookingRepo struct{ bookedIDs []string }

func (f *fakeBookingRepo) ListBookedSlotIDs(_ context.Context, _ string, _, _ time.Time) ([]string, error) {
	return f.bookedIDs, nil
}

type recordingCache struct {
	stored map[string][]*domain.Slot
	hit    []*domain.Slot
	gets   int
	sets   int
}

func (c *recordingCache) Get(_ context.Context, _ string, _, _ time.Time) ([]*domain.Slot, error) {
	c.gets++
	if c.hit != nil {
		return c.hit, nil
	}
	return nil, slotsCache.ErrCacheMiss
}

func (c *recordingCache) Set(_ context.Context, stationID string, _, _ time.Time, slots []*domain.Slot) error {
	c.sets++
	if c.stored == nil {
		c.stored = make(map[string][]*domain.Slot)
	}
	c.stored[stationID] = slots
	return nil
}

func testFixtures() (*fakeStationRepo, *fakeBookingRepo, *recordingCache) {
	return &fakeStationRepo{
			station: &domain.Station{ID: "st-1", StationName: "Colombo Central"},
			slots: []*domain.Slot{
				{ID: "slot-1", StationID: "st-1", SlotCode: "A1"},
				{ID: "slot-2", StationID: "st-1", SlotCode: "A2"},
				{ID: "slot-3", StationID: "st-1", SlotCode: "A3", SlotStatus: domain.SlotMaintenance},
			},
		},
		&fakeBookingRepo{},
		&recordingCache{}
}

func validRequest() *Request {
	return &Request{
		StationID: "st-1",
		StartTime: windowStart,
		EndTime:   windowStart.Add(time.Hour),
	}
}

func TestExecuteFiltersBookedSlots(t *testing.T) {
	stations, bookings, cache := testFixtures()
	bookings.bookedIDs = []string{"slot-2"}
	uc := NewUseCase(stations, bookings, cache, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.AvailableSlots, 2)
	assert.Equal(t, "slot-1", resp.AvailableSlots[0].ID)
	assert.Equal(t, "slot-3", resp.AvailableSlots[1].ID)
	assert.Equal(t, "Colombo Central", resp.StationName)
	assert.Equal(t, windowStart, resp.StartTime)
	assert.Equal(t, windowStart.Add(time.Hour), resp.EndTime)

	// The computed result was cached.
	assert.Equal(t, 1, cache.sets)
	assert.Len(t, cache.stored["st-1"], 2)
}

func TestExecuteMaintenanceSlotStaysListed(t *testing.T) {
	// The informational flag is reported but never filtered on; conflicts
	// alone decide availability.
	stations, bookings, cache := testFixtures()
	uc := NewUseCase(stations, bookings, cache, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.AvailableSlots, 3)
	assert.Equal(t, string(domain.SlotMaintenance), resp.AvailableSlots[2].SlotStatus)
}

func TestExecuteServesFromCache(t *testing.T) {
	stations, bookings, cache := testFixtures()
	cache.hit = []*domain.Slot{{ID: "slot-9", SlotCode: "Z9"}}
	uc := NewUseCase(stations, bookings, cache, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.AvailableSlots, 1)
	assert.Equal(t, "slot-9", resp.AvailableSlots[0].ID)
	assert.Equal(t, 0, cache.sets)
}

func TestExecuteRejectsUnknownStation(t *testing.T) {
	stations, bookings, cache := testFixtures()
	uc := NewUseCase(stations, bookings, cache, nopLogger{})

	req := validRequest()
	req.StationID = "st-unknown"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestExecuteAnswersForPastWindows(t *testing.T) {
	// Availability is a read; unlike booking creation it has no temporal
	// restrictions, so past windows can be inspected.
	stations, bookings, cache := testFixtures()
	uc := NewUseCase(stations, bookings, cache, nopLogger{})

	req := validRequest()
	req.StartTime = windowStart.AddDate(0, -1, 0)
	req.EndTime = req.StartTime.Add(time.Hour)
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.AvailableSlots, 3)
}

func TestExecuteValidatesWindow(t *testing.T) {
	stations, bookings, cache := testFixtures()
	uc := NewUseCase(stations, bookings, cache, nopLogger{})

	req := validRequest()
	req.StationID = ""
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.StartTime = time.Time{}
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.EndTime = time.Time{}
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// End must be strictly after start.
	req = validRequest()
	req.EndTime = req.StartTime
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.EndTime = req.StartTime.Add(-time.Hour)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
