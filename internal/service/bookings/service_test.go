package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
	bookingRepo "github.com/evcsm/EVCS-BookingService/internal/infra/storage/booking"
	stationRepo "github.com/evcsm/EVCS-BookingService/internal/infra/storage/station"
	"github.com/evcsm/EVCS-BookingService/internal/service/bookings/models"
	"github.com/evcsm/EVCS-BookingService/pkg/ptr"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type fakeTime struct{ now time.Time }

func (f fakeTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	booking    *domain.Booking
	listed     []*domain.Booking
	total      int64
	lastFilter *domain.BookingFilter

	cancelledID     string
	cancelledReason *string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByBookingNumber(_ context.Context, number string) (*domain.Booking, error) {
	if f.booking == nil || f.booking.BookingNumber != number {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) List(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, int64, error) {
	f.lastFilter = &filter
	return f.listed, f.total, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id string, reason *string) error {
	if f.booking == nil || f.booking.ID != id {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelledID = id
	f.cancelledReason = reason
	return nil
}

type fakeStationRepo struct {
	station          *domain.Station
	operatorStations map[string][]string
}

func (f *fakeStationRepo) GetStationByID(_ context.Context, id string) (*domain.Station, error) {
	if f.station == nil || f.station.ID != id {
		return nil, stationRepo.ErrStationNotFound
	}
	return f.station, nil
}

func (f *fakeStationRepo) ListStationIDsByOperator(_ context.Context, operatorID string) ([]string, error) {
	return f.operatorStations[operatorID], nil
}

type fakeCache struct{ invalidated []string }

func (f *fakeCache) InvalidateStation(_ context.Context, stationID string) error {
	f.invalidated = append(f.invalidated, stationID)
	return nil
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:                   "booking-1",
		BookingNumber:        "BK202506010001",
		CustomerNic:          "991234567V",
		CustomerName:         "Nimal Perera",
		StationID:            "st-1",
		StationName:          "Colombo Central",
		SlotID:               "slot-1",
		SlotCode:             "A1",
		ReservationStartTime: testNow.Add(24 * time.Hour),
		ReservationEndTime:   testNow.Add(25 * time.Hour),
		DurationMinutes:      60,
		Status:               domain.StatusConfirmed,
		PricePerKWh:          0.45,
		EstimatedKWh:         40,
		TotalAmount:          18,
		CreatedAt:            testNow.Add(-time.Hour),
	}
}

func backoffice() models.Requester {
	return models.Requester{UserID: "admin-1", Role: domain.RoleBackoffice}
}

func operator(userID string) models.Requester {
	return models.Requester{UserID: userID, Role: domain.RoleStationOperator}
}

func owner(nic string) models.Requester {
	return models.Requester{UserID: "owner-1", Role: domain.RoleEVOwner, Nic: nic}
}

func newTestService(bookings *fakeBookingRepo, stations *fakeStationRepo, cache *fakeCache) *Service {
	svc := NewService(bookings, stations, cache, nopLogger{})
	svc.timeProvider = fakeTime{now: testNow}
	return svc
}

func TestGetByIDAccess(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	stations := &fakeStationRepo{station: &domain.Station{ID: "st-1", OperatorIDs: []string{"op-1"}}}
	svc := newTestService(repo, stations, &fakeCache{})

	// Backoffice sees any booking.
	resp, err := svc.GetByID(context.Background(), "booking-1", backoffice())
	require.NoError(t, err)
	assert.Equal(t, "BK202506010001", resp.BookingNumber)

	// The owning EV owner sees their booking, a foreign one does not.
	_, err = svc.GetByID(context.Background(), "booking-1", owner("991234567V"))
	assert.NoError(t, err)
	_, err = svc.GetByID(context.Background(), "booking-1", owner("880000000V"))
	assert.ErrorIs(t, err, ErrAccessDenied)

	// An operator of the station sees it, others do not.
	_, err = svc.GetByID(context.Background(), "booking-1", operator("op-1"))
	assert.NoError(t, err)
	_, err = svc.GetByID(context.Background(), "booking-1", operator("op-2"))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeStationRepo{}, &fakeCache{})

	_, err := svc.GetByID(context.Background(), "booking-missing", backoffice())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByBookingNumber(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	svc := newTestService(repo, &fakeStationRepo{}, &fakeCache{})

	resp, err := svc.GetByBookingNumber(context.Background(), "BK202506010001", backoffice())
	require.NoError(t, err)
	assert.Equal(t, "booking-1", resp.ID)

	_, err = svc.GetByBookingNumber(context.Background(), "BK202506010099", backoffice())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListBackofficeUnscoped(t *testing.T) {
	repo := &fakeBookingRepo{listed: []*domain.Booking{testBooking()}, total: 1}
	svc := newTestService(repo, &fakeStationRepo{}, &fakeCache{})

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{Requester: backoffice()})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.TotalCount)
	require.NotNil(t, repo.lastFilter)
	assert.Nil(t, repo.lastFilter.StationIDs)
	assert.Nil(t, repo.lastFilter.CustomerNic)
}

func TestListOwnerScopedToOwnNic(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, &fakeStationRepo{}, &fakeCache{})

	// Even an explicit filter for someone else's NIC is overridden.
	_, err := svc.List(context.Background(), &models.ListBookingsRequest{
		CustomerNic: ptr.Ptr("880000000V"),
		Requester:   owner("991234567V"),
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	require.NotNil(t, repo.lastFilter.CustomerNic)
	assert.Equal(t, "991234567V", *repo.lastFilter.CustomerNic)
}

func TestListOperatorScopedToTheirStations(t *testing.T) {
	repo := &fakeBookingRepo{}
	stations := &fakeStationRepo{operatorStations: map[string][]string{"op-1": {"st-1", "st-2"}}}
	svc := newTestService(repo, stations, &fakeCache{})

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{Requester: operator("op-1")})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, []string{"st-1", "st-2"}, repo.lastFilter.StationIDs)

	// A station filter inside the operator's scope passes through.
	_, err = svc.List(context.Background(), &models.ListBookingsRequest{
		StationID: ptr.Ptr("st-2"),
		Requester: operator("op-1"),
	})
	assert.NoError(t, err)

	// One outside the scope is denied.
	_, err = svc.List(context.Background(), &models.ListBookingsRequest{
		StationID: ptr.Ptr("st-9"),
		Requester: operator("op-1"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListOperatorWithoutStationsSeesEmptyPage(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, &fakeStationRepo{}, &fakeCache{})

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{Requester: operator("op-none")})
	require.NoError(t, err)

	assert.Empty(t, resp.Bookings)
	assert.Equal(t, int64(0), resp.TotalCount)
	assert.Nil(t, repo.lastFilter)
}

func TestListRejectsInvalidStatus(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeStationRepo{}, &fakeCache{})

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Status:    ptr.Ptr("teleporting"),
		Requester: backoffice(),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListNormalizesPagination(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, &fakeStationRepo{}, &fakeCache{})

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Page:      0,
		PageSize:  10_000,
		Requester: backoffice(),
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, domain.DefaultPage, repo.lastFilter.Page)
	assert.Equal(t, domain.MaxPageSize, repo.lastFilter.PageSize)
}

func TestListPaginationEnvelope(t *testing.T) {
	repo := &fakeBookingRepo{listed: []*domain.Booking{testBooking()}, total: 25}
	svc := newTestService(repo, &fakeStationRepo{}, &fakeCache{})

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Page:      2,
		PageSize:  10,
		Requester: backoffice(),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasNextPage)
	assert.True(t, resp.HasPreviousPage)
}

func TestCancelByOwner(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	cache := &fakeCache{}
	svc := newTestService(repo, &fakeStationRepo{}, cache)

	err := svc.Cancel(context.Background(), "booking-1", &models.CancelBookingRequest{
		Reason:    ptr.Ptr("plans changed"),
		Requester: owner("991234567V"),
	})
	require.NoError(t, err)

	assert.Equal(t, "booking-1", repo.cancelledID)
	require.NotNil(t, repo.cancelledReason)
	assert.Equal(t, "plans changed", *repo.cancelledReason)
	assert.Equal(t, []string{"st-1"}, cache.invalidated)
}

func TestCancelAccess(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	svc := newTestService(repo, &fakeStationRepo{}, &fakeCache{})

	// A foreign owner may not cancel.
	err := svc.Cancel(context.Background(), "booking-1", &models.CancelBookingRequest{
		Requester: owner("880000000V"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Station operators never cancel, even for their own stations.
	err = svc.Cancel(context.Background(), "booking-1", &models.CancelBookingRequest{
		Requester: operator("op-1"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Backoffice always may.
	err = svc.Cancel(context.Background(), "booking-1", &models.CancelBookingRequest{
		Requester: backoffice(),
	})
	assert.NoError(t, err)
}

func TestCancelRejectsTerminalStatuses(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusExpired,
	} {
		booking := testBooking()
		booking.Status = status
		svc := newTestService(&fakeBookingRepo{booking: booking}, &fakeStationRepo{}, &fakeCache{})

		err := svc.Cancel(context.Background(), "booking-1", &models.CancelBookingRequest{
			Requester: backoffice(),
		})
		assert.ErrorIs(t, err, ErrCannotCancel, "status %s", status)
	}
}

func TestCancelEnforcesCutoff(t *testing.T) {
	booking := testBooking()
	booking.ReservationStartTime = testNow.Add(11 * time.Hour)
	booking.ReservationEndTime = testNow.Add(12 * time.Hour)
	repo := &fakeBookingRepo{booking: booking}
	svc := newTestService(repo, &fakeStationRepo{}, &fakeCache{})

	err := svc.Cancel(context.Background(), "booking-1", &models.CancelBookingRequest{
		Requester: backoffice(),
	})
	assert.ErrorIs(t, err, ErrTooLateToCancel)
	assert.Empty(t, repo.cancelledID)
}

func TestCancelUnknownBooking(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeStationRepo{}, &fakeCache{})

	err := svc.Cancel(context.Background(), "booking-missing", &models.CancelBookingRequest{
		Requester: backoffice(),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
