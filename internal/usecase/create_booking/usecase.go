package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
	stationRepo "github.com/evcsm/EVCS-BookingService/internal/infra/storage/station"
	"github.com/evcsm/EVCS-BookingService/internal/service/qrcode"
	"github.com/evcsm/EVCS-BookingService/pkg/ptr"
)

// UseCase creates a charging-slot booking.
type UseCase struct {
	bookingRepo  BookingRepository
	stationRepo  StationRepository
	slotsCache   SlotsCache
	qrService    QRService
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates a new create-booking use case.
func NewUseCase(
	bookingRepo BookingRepository,
	stationRepo StationRepository,
	slotsCache SlotsCache,
	qrService QRService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		stationRepo:  stationRepo,
		slotsCache:   slotsCache,
		qrService:    qrService,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute creates a booking. The availability check, booking-number
// allocation and insert run in a serializable transaction so two concurrent
// requests for the same window cannot both succeed.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: nic=%s, station=%s, slot=%s, start=%s, duration=%d",
		req.CustomerNic, req.StationID, req.SlotID, req.ReservationStartTime.Format(time.RFC3339), req.DurationMinutes)

	// 1. Validate input fields
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Current time
	now := uc.timeProvider.Now()

	// 3. Temporal rules: strictly future start, within the horizon
	if err := validateWindow(req.ReservationStartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: window validation failed: %v", err)
		return nil, err
	}

	end := req.ReservationStartTime.Add(time.Duration(req.DurationMinutes) * time.Minute)

	// 4. Station must exist
	station, err := uc.stationRepo.GetStationByID(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, stationRepo.ErrStationNotFound) {
			uc.logger.Warn("CreateBooking: station id=%s not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("CreateBooking: failed to get station id=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}

	// 5. Slot must exist and belong to the requested station
	slot, err := uc.stationRepo.GetSlotByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, stationRepo.ErrSlotNotFound) {
			uc.logger.Warn("CreateBooking: slot id=%s not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("CreateBooking: failed to get slot id=%s: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}
	if slot.StationID != req.StationID {
		uc.logger.Warn("CreateBooking: slot id=%s belongs to station %s, not %s", req.SlotID, slot.StationID, req.StationID)
		return nil, ErrSlotNotFound
	}

	var result *domain.Booking

	// 6. Check availability and insert in a serializable transaction
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Count live bookings overlapping the window, locking the rows
		overlapping, err := uc.bookingRepo.CountOverlapping(txCtx, req.SlotID, req.ReservationStartTime, end, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
		}
		if overlapping > 0 {
			uc.logger.Warn("CreateBooking: slot id=%s has %d overlapping bookings", req.SlotID, overlapping)
			return ErrSlotNotAvailable
		}

		// 6.2. Allocate the per-day booking number
		seq, err := uc.bookingRepo.NextBookingSequence(txCtx, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to allocate booking sequence: %v", err)
			return fmt.Errorf("%w: failed to allocate booking sequence: %v", ErrInternal, err)
		}
		bookingNumber := domain.FormatBookingNumber(now, seq)

		// 6.3. Build the booking with station, slot and pricing snapshots
		booking := &domain.Booking{
			BookingNumber:        bookingNumber,
			CustomerNic:          req.CustomerNic,
			CustomerName:         req.CustomerName,
			CustomerEmail:        req.CustomerEmail,
			CustomerPhone:        req.CustomerPhone,
			StationID:            station.ID,
			StationName:          station.StationName,
			SlotID:               slot.ID,
			SlotCode:             slot.SlotCode,
			ReservationStartTime: req.ReservationStartTime,
			ReservationEndTime:   end,
			DurationMinutes:      req.DurationMinutes,
			Status:               domain.StatusConfirmed,
			PricePerKWh:          slot.PricePerKWh,
			EstimatedKWh:         req.EstimatedKWh,
			TotalAmount:          req.EstimatedKWh * slot.PricePerKWh,
			QRCode:               ptr.Ptr(uc.qrService.Token(bookingNumber, now)),
			Notes:                req.Notes,
			CreatedBy:            req.CreatedBy,
		}

		// 6.4. Persist
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 7. Drop cached availability for the station; a failure only delays
	// freshness until the cache TTL expires
	if err := uc.slotsCache.InvalidateStation(ctx, result.StationID); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate slots cache for station=%s: %v", result.StationID, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s number=%s", result.ID, result.BookingNumber)

	// 8. Encode the QR payload returned to the client
	qrPayload, err := uc.qrService.Encode(qrcode.Payload{
		BookingID:       result.ID,
		EvOwnerNic:      result.CustomerNic,
		StationID:       result.StationID,
		ReservationDate: result.ReservationStartTime.UTC().Format(time.RFC3339),
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to encode QR payload: %v", err)
		return nil, fmt.Errorf("%w: failed to encode QR payload: %v", ErrInternal, err)
	}

	return toResponse(result, qrPayload), nil
}
