package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
	slotsCache "github.com/evcsm/EVCS-BookingService/internal/infra/cache/slots"
	stationRepo "github.com/evcsm/EVCS-BookingService/internal/infra/storage/station"
)

// UseCase lists the slots of a station free for a reservation window.
type UseCase struct {
	stationRepo StationRepository
	bookingRepo BookingRepository
	cache       SlotsCache
	logger      Logger
}

// NewUseCase creates a new get-available-slots use case.
func NewUseCase(
	stationRepo StationRepository,
	bookingRepo BookingRepository,
	cache SlotsCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		stationRepo: stationRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Execute computes availability for the window. The result is read from the
// cache when present; cache errors degrade to a recompute. Availability is
// decided purely by booking overlap, the informational slot status is
// reported but never filtered on. Any well-formed window may be queried;
// the temporal booking rules apply only when a booking is actually placed.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: station=%s, start=%s, end=%s",
		req.StationID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Validate input fields
	if req.StationID == "" {
		return nil, fmt.Errorf("%w: stationId is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	start, end := req.StartTime, req.EndTime

	// 2. Station must exist
	station, err := uc.stationRepo.GetStationByID(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, stationRepo.ErrStationNotFound) {
			uc.logger.Warn("GetAvailableSlots: station id=%s not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get station id=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}

	// 3. Cache lookup
	cached, err := uc.cache.Get(ctx, req.StationID, start, end)
	if err == nil {
		uc.logger.Info("GetAvailableSlots: cache hit for station=%s", req.StationID)
		return &Response{
			StationID:      station.ID,
			StationName:    station.StationName,
			StartTime:      start,
			EndTime:        end,
			AvailableSlots: toSlotInfos(cached),
		}, nil
	}
	if !errors.Is(err, slotsCache.ErrCacheMiss) {
		uc.logger.Warn("GetAvailableSlots: cache get failed for station=%s: %v", req.StationID, err)
	}

	// 4. All slots of the station
	slots, err := uc.stationRepo.ListSlotsByStation(ctx, req.StationID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots for station=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 5. Slot ids with a live booking overlapping the window
	bookedIDs, err := uc.bookingRepo.ListBookedSlotIDs(ctx, req.StationID, start, end)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list booked slots for station=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to list booked slots: %v", ErrInternal, err)
	}

	booked := make(map[string]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	available := make([]*domain.Slot, 0, len(slots))
	for _, s := range slots {
		if _, taken := booked[s.ID]; !taken {
			available = append(available, s)
		}
	}

	// 6. Store in cache; failures only cost the next recompute
	if err := uc.cache.Set(ctx, req.StationID, start, end, available); err != nil {
		uc.logger.Warn("GetAvailableSlots: cache set failed for station=%s: %v", req.StationID, err)
	}

	uc.logger.Info("GetAvailableSlots: station=%s, %d/%d slots free", req.StationID, len(available), len(slots))

	return &Response{
		StationID:      station.ID,
		StationName:    station.StationName,
		StartTime:      start,
		EndTime:        end,
		AvailableSlots: toSlotInfos(available),
	}, nil
}
