package validate_qr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
	bookingRepo "github.com/evcsm/EVCS-BookingService/internal/infra/storage/booking"
)

// UseCase validates a scanned booking QR code at a station.
type UseCase struct {
	bookingRepo  BookingRepository
	qrService    QRService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates a new validate-QR use case.
func NewUseCase(bookingRepo BookingRepository, qrService QRService, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		qrService:    qrService,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs the ordered validation checks. Failures are a verdict, not an
// error: the returned error is non-nil only when the response itself cannot
// be produced, which never happens here.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateQR: station=%s", req.StationID)

	// 1. Payload must decode
	if req.QRPayload == "" || req.StationID == "" {
		return invalid(CodeValidationError, "qrPayload and stationId are required"), nil
	}

	payload, err := uc.qrService.Decode(req.QRPayload)
	if err != nil {
		uc.logger.Warn("ValidateQR: malformed payload: %v", err)
		return invalid(CodeValidationError, "QR code could not be decoded"), nil
	}

	// 2. The booking must exist
	b, err := uc.bookingRepo.GetByID(ctx, payload.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ValidateQR: booking id=%s not found", payload.BookingID)
			return invalid(CodeBookingNotFound, "booking not found"), nil
		}
		uc.logger.Error("ValidateQR: failed to get booking id=%s: %v", payload.BookingID, err)
		return invalid(CodeValidationError, "booking could not be verified"), nil
	}

	// 3. Payload must match the stored customer
	if b.CustomerNic != payload.EvOwnerNic {
		uc.logger.Warn("ValidateQR: customer mismatch for booking id=%s", b.ID)
		return invalid(CodeInvalidCustomer, "QR code does not match the booking customer"), nil
	}

	// 4. The booking must belong to the scanning station
	if b.StationID != payload.StationID || b.StationID != req.StationID {
		uc.logger.Warn("ValidateQR: station mismatch for booking id=%s: booking=%s, scanned=%s",
			b.ID, b.StationID, req.StationID)
		return invalid(CodeInvalidStation, "booking belongs to a different station"), nil
	}

	// 5. Only confirmed or in-progress bookings admit a check-in
	if b.Status != domain.StatusConfirmed && b.Status != domain.StatusInProgress {
		uc.logger.Warn("ValidateQR: booking id=%s has status %s", b.ID, b.Status)
		return invalid(CodeInvalidStatus, fmt.Sprintf("booking status is %s", b.Status)), nil
	}

	now := uc.timeProvider.Now()

	// 6. Check-in opens one hour before the reservation start
	if b.ReservationStartTime.Sub(now) > domain.QRActivationBufferHours*time.Hour {
		uc.logger.Warn("ValidateQR: booking id=%s not yet active, starts at %s",
			b.ID, b.ReservationStartTime.Format(time.RFC3339))
		return invalid(CodeBookingNotActive, "booking is not active yet"), nil
	}

	// 7. The reservation window must not have ended
	if b.ReservationEndTime.Before(now) {
		uc.logger.Warn("ValidateQR: booking id=%s expired at %s", b.ID, b.ReservationEndTime.Format(time.RFC3339))
		return invalid(CodeBookingExpired, "booking reservation window has ended"), nil
	}

	uc.logger.Info("ValidateQR: booking id=%s number=%s is valid", b.ID, b.BookingNumber)
	return valid(b), nil
}
