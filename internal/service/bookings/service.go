package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
	bookingRepo "github.com/evcsm/EVCS-BookingService/internal/infra/storage/booking"
	"github.com/evcsm/EVCS-BookingService/internal/service/bookings/models"
	"github.com/evcsm/EVCS-BookingService/pkg/ptr"
)

// Service reads and cancels bookings with role-scoped visibility:
// backoffice sees everything, a station operator the bookings of their
// stations, an EV owner only their own.
type Service struct {
	bookingRepo  BookingRepository
	stationRepo  StationRepository
	slotsCache   SlotsCache
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates a new bookings service.
func NewService(
	bookingRepo BookingRepository,
	stationRepo StationRepository,
	slotsCache SlotsCache,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		stationRepo:  stationRepo,
		slotsCache:   slotsCache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID fetches a booking, enforcing requester visibility.
func (s *Service) GetByID(ctx context.Context, id string, requester models.Requester) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s role=%s", id, requester.UserID, requester.Role)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkBookingAccess(ctx, booking, requester); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", requester.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetByBookingNumber fetches a booking by its human-readable number,
// enforcing the same visibility rules as GetByID.
func (s *Service) GetByBookingNumber(ctx context.Context, number string, requester models.Requester) (*models.BookingResponse, error) {
	s.logger.Info("GetByBookingNumber: fetching booking number=%s for user=%s", number, requester.UserID)

	booking, err := s.bookingRepo.GetByBookingNumber(ctx, number)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByBookingNumber: booking number=%s not found", number)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByBookingNumber: repository error for number=%s: %v", number, err)
		return nil, fmt.Errorf("%w: GetByBookingNumber - repository error: %v", ErrInternal, err)
	}

	if err := s.checkBookingAccess(ctx, booking, requester); err != nil {
		s.logger.Warn("GetByBookingNumber: access denied for user=%s to booking number=%s", requester.UserID, number)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List returns a page of bookings. Filters are conjunctive; the requester's
// role narrows visibility before any filter applies.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for user=%s role=%s, page=%d", req.Requester.UserID, req.Requester.Role, req.Page)

	filter, err := s.buildFilter(ctx, req)
	if err != nil {
		return nil, err
	}

	// An operator with no stations sees an empty page, not everything.
	if filter == nil {
		return models.FromDomainBookingList(nil, 0, normalizePage(req.Page), normalizePageSize(req.PageSize)), nil
	}

	bookings, total, err := s.bookingRepo.List(ctx, *filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d of %d bookings", len(bookings), total)
	return models.FromDomainBookingList(bookings, total, filter.Page, filter.PageSize), nil
}

// Cancel cancels a booking. Only backoffice or the owning EV owner may
// cancel, the status must still permit it and the cutoff before the
// reservation start must not have passed.
func (s *Service) Cancel(ctx context.Context, bookingID string, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s role=%s", bookingID, req.Requester.UserID, req.Requester.Role)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	switch req.Requester.Role {
	case domain.RoleBackoffice:
		// unrestricted
	case domain.RoleEVOwner:
		if booking.CustomerNic != req.Requester.Nic {
			s.logger.Warn("Cancel: access denied for user=%s to booking id=%s", req.Requester.UserID, bookingID)
			return ErrAccessDenied
		}
	default:
		s.logger.Warn("Cancel: role %s may not cancel bookings", req.Requester.Role)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	now := s.timeProvider.Now()
	if booking.ReservationStartTime.Sub(now) < domain.ModificationCutoffHours*time.Hour {
		s.logger.Warn("Cancel: booking id=%s is inside the %dh cancellation cutoff", bookingID, domain.ModificationCutoffHours)
		return ErrTooLateToCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.Reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// The freed window becomes bookable again immediately.
	if err := s.slotsCache.InvalidateStation(ctx, booking.StationID); err != nil {
		s.logger.Warn("Cancel: failed to invalidate slots cache for station=%s: %v", booking.StationID, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return nil
}

// buildFilter converts the request to a domain filter with role scoping
// applied. A nil filter with nil error means the requester can see nothing.
func (s *Service) buildFilter(ctx context.Context, req *models.ListBookingsRequest) (*domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		StationID:    req.StationID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CustomerName: req.CustomerName,
		CustomerNic:  req.CustomerNic,
		Page:         normalizePage(req.Page),
		PageSize:     normalizePageSize(req.PageSize),
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
	}

	if req.Status != nil {
		status, ok := domain.ParseBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("List: invalid status filter %q", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	switch req.Requester.Role {
	case domain.RoleBackoffice:
		// unrestricted

	case domain.RoleStationOperator:
		stationIDs, err := s.stationRepo.ListStationIDsByOperator(ctx, req.Requester.UserID)
		if err != nil {
			s.logger.Error("List: failed to resolve operator stations for user=%s: %v", req.Requester.UserID, err)
			return nil, fmt.Errorf("%w: List - failed to resolve operator stations: %v", ErrInternal, err)
		}
		if len(stationIDs) == 0 {
			return nil, nil
		}
		if req.StationID != nil && !contains(stationIDs, *req.StationID) {
			s.logger.Warn("List: operator user=%s requested station %s outside their scope", req.Requester.UserID, *req.StationID)
			return nil, ErrAccessDenied
		}
		filter.StationIDs = stationIDs

	case domain.RoleEVOwner:
		// An owner's listing is always scoped to their own NIC, whatever
		// the request says.
		filter.CustomerNic = ptr.Ptr(req.Requester.Nic)

	default:
		return nil, ErrAccessDenied
	}

	return &filter, nil
}

// checkBookingAccess verifies the requester may see this booking.
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, requester models.Requester) error {
	switch requester.Role {
	case domain.RoleBackoffice:
		return nil

	case domain.RoleStationOperator:
		station, err := s.stationRepo.GetStationByID(ctx, booking.StationID)
		if err != nil {
			s.logger.Error("checkBookingAccess: failed to get station id=%s: %v", booking.StationID, err)
			return fmt.Errorf("%w: checkBookingAccess - failed to get station: %v", ErrInternal, err)
		}
		if !station.HasOperator(requester.UserID) {
			return ErrAccessDenied
		}
		return nil

	case domain.RoleEVOwner:
		if booking.CustomerNic == requester.Nic {
			return nil
		}
		return ErrAccessDenied

	default:
		return ErrAccessDenied
	}
}

func normalizePage(page int) int {
	if page < 1 {
		return domain.DefaultPage
	}
	return page
}

func normalizePageSize(pageSize int) int {
	if pageSize < 1 {
		return domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		return domain.MaxPageSize
	}
	return pageSize
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
