package update_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
	bookingRepo "github.com/evcsm/EVCS-BookingService/internal/infra/storage/booking"
	"github.com/evcsm/EVCS-BookingService/pkg/ptr"
)

// UseCase modifies an existing booking.
type UseCase struct {
	bookingRepo  BookingRepository
	stationRepo  StationRepository
	slotsCache   SlotsCache
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates a new update-booking use case.
func NewUseCase(
	repo BookingRepository,
	stationRepo StationRepository,
	slotsCache SlotsCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  repo,
		stationRepo:  stationRepo,
		slotsCache:   slotsCache,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute updates a booking. The cutoff applies to the reservation start the
// booking currently holds, not the requested one: once inside the cutoff the
// booking is frozen and cannot be pushed further out either. The availability
// re-check excludes the booking itself so keeping the same window is allowed.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: id=%s, start=%s, duration=%d",
		req.BookingID, req.ReservationStartTime.Format(time.RFC3339), req.DurationMinutes)

	// 1. Validate input fields
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Current time
	now := uc.timeProvider.Now()

	var stationID string

	// 3. Re-read, re-check and write in a serializable transaction
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Load the booking
		existing, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		stationID = existing.StationID

		// 3.2. Access check
		if err := validateAccess(existing, req.RequesterRole, req.RequesterNic); err != nil {
			uc.logger.Warn("UpdateBooking: access denied for booking id=%s, role=%s", req.BookingID, req.RequesterRole)
			return err
		}

		// 3.3. Status must still permit modification
		if !existing.CanBeUpdated() {
			uc.logger.Warn("UpdateBooking: booking id=%s in status %s cannot be modified", req.BookingID, existing.Status)
			return ErrBookingNotModifiable
		}

		// 3.4. Modification cutoff against the current reservation start
		if existing.ReservationStartTime.Sub(now) < domain.ModificationCutoffHours*time.Hour {
			uc.logger.Warn("UpdateBooking: booking id=%s is inside the %dh modification cutoff",
				req.BookingID, domain.ModificationCutoffHours)
			return ErrTooLateToModify
		}

		// 3.5. Temporal rules for the new window
		if err := validateWindow(req.ReservationStartTime, now); err != nil {
			uc.logger.Warn("UpdateBooking: window validation failed: %v", err)
			return err
		}

		end := req.ReservationStartTime.Add(time.Duration(req.DurationMinutes) * time.Minute)

		// 3.6. Re-check availability, excluding this booking
		overlapping, err := uc.bookingRepo.CountOverlapping(txCtx, existing.SlotID, req.ReservationStartTime, end, ptr.Ptr(existing.ID))
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to count overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
		}
		if overlapping > 0 {
			uc.logger.Warn("UpdateBooking: slot id=%s has %d overlapping bookings", existing.SlotID, overlapping)
			return ErrSlotNotAvailable
		}

		// 3.7. Reprice at the slot's current tariff, not the snapshot the
		// booking was created with
		slot, err := uc.stationRepo.GetSlotByID(txCtx, existing.SlotID)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get slot id=%s: %v", existing.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 3.8. Persist
		fields := bookingRepo.UpdateFields{
			CustomerNic:          req.CustomerNic,
			CustomerName:         req.CustomerName,
			CustomerEmail:        req.CustomerEmail,
			CustomerPhone:        req.CustomerPhone,
			ReservationStartTime: req.ReservationStartTime,
			ReservationEndTime:   end,
			DurationMinutes:      req.DurationMinutes,
			PricePerKWh:          slot.PricePerKWh,
			EstimatedKWh:         req.EstimatedKWh,
			TotalAmount:          req.EstimatedKWh * slot.PricePerKWh,
			Notes:                req.Notes,
		}
		if err := uc.bookingRepo.Update(txCtx, existing.ID, fields); err != nil {
			uc.logger.Error("UpdateBooking: failed to update booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// 4. Drop cached availability for the station
	if err := uc.slotsCache.InvalidateStation(ctx, stationID); err != nil {
		uc.logger.Warn("UpdateBooking: failed to invalidate slots cache for station=%s: %v", stationID, err)
	}

	// 5. Re-read the final state
	updated, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to reload booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%s", updated.ID)

	return toResponse(updated), nil
}
