package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
	stationRepo "github.com/evcsm/EVCS-BookingService/internal/infra/storage/station"
	"github.com/evcsm/EVCS-BookingService/internal/service/slots/models"
)

// Service manages the charging-slot inventory of stations.
type Service struct {
	stationRepo StationRepository
	slotsCache  SlotsCache
	logger      Logger
}

// NewService creates a new slots service.
func NewService(stationRepo StationRepository, slotsCache SlotsCache, logger Logger) *Service {
	return &Service{
		stationRepo: stationRepo,
		slotsCache:  slotsCache,
		logger:      logger,
	}
}

// ListByStation returns the slot inventory of a station.
func (s *Service) ListByStation(ctx context.Context, stationID string) (*models.SlotListResponse, error) {
	s.logger.Info("ListByStation: fetching slots for station=%s", stationID)

	if _, err := s.stationRepo.GetStationByID(ctx, stationID); err != nil {
		if errors.Is(err, stationRepo.ErrStationNotFound) {
			s.logger.Warn("ListByStation: station id=%s not found", stationID)
			return nil, ErrStationNotFound
		}
		s.logger.Error("ListByStation: failed to get station id=%s: %v", stationID, err)
		return nil, fmt.Errorf("%w: ListByStation - repository error: %v", ErrInternal, err)
	}

	slots, err := s.stationRepo.ListSlotsByStation(ctx, stationID)
	if err != nil {
		s.logger.Error("ListByStation: repository error for station=%s: %v", stationID, err)
		return nil, fmt.Errorf("%w: ListByStation - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByStation: successfully fetched %d slots for station=%s", len(slots), stationID)
	return models.FromDomainSlotList(stationID, slots), nil
}

// CreateSlot adds a slot to a station. The connector type and power rating
// must form a valid hardware combination.
func (s *Service) CreateSlot(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("CreateSlot: station=%s, code=%s, connector=%s, power=%d",
		req.StationID, req.SlotCode, req.ConnectorType, req.PowerRatingKW)

	if err := validateSlotDefinition(req.SlotCode, req.ConnectorType, req.PowerRatingKW, req.PricePerKWh); err != nil {
		s.logger.Warn("CreateSlot: validation failed: %v", err)
		return nil, err
	}
	if req.StationID == "" {
		return nil, fmt.Errorf("%w: stationId is required", ErrInvalidInput)
	}

	if _, err := s.stationRepo.GetStationByID(ctx, req.StationID); err != nil {
		if errors.Is(err, stationRepo.ErrStationNotFound) {
			s.logger.Warn("CreateSlot: station id=%s not found", req.StationID)
			return nil, ErrStationNotFound
		}
		s.logger.Error("CreateSlot: failed to get station id=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: CreateSlot - repository error: %v", ErrInternal, err)
	}

	created, err := s.stationRepo.CreateSlot(ctx, &domain.Slot{
		StationID:     req.StationID,
		SlotCode:      req.SlotCode,
		ConnectorType: domain.ConnectorType(req.ConnectorType),
		PowerRatingKW: req.PowerRatingKW,
		PricePerKWh:   req.PricePerKWh,
		SlotStatus:    domain.SlotAvailable,
	})
	if err != nil {
		s.logger.Error("CreateSlot: repository error for station=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: CreateSlot - repository error: %v", ErrInternal, err)
	}

	if err := s.slotsCache.InvalidateStation(ctx, req.StationID); err != nil {
		s.logger.Warn("CreateSlot: failed to invalidate slots cache for station=%s: %v", req.StationID, err)
	}

	s.logger.Info("CreateSlot: successfully created slot id=%s for station=%s", created.ID, req.StationID)
	return models.FromDomainSlot(created), nil
}

// UpdateSlot modifies a slot definition.
func (s *Service) UpdateSlot(ctx context.Context, slotID string, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("UpdateSlot: slot=%s, code=%s, connector=%s, power=%d",
		slotID, req.SlotCode, req.ConnectorType, req.PowerRatingKW)

	if err := validateSlotDefinition(req.SlotCode, req.ConnectorType, req.PowerRatingKW, req.PricePerKWh); err != nil {
		s.logger.Warn("UpdateSlot: validation failed: %v", err)
		return nil, err
	}

	slot, err := s.stationRepo.GetSlotByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, stationRepo.ErrSlotNotFound) {
			s.logger.Warn("UpdateSlot: slot id=%s not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("UpdateSlot: failed to get slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: UpdateSlot - repository error: %v", ErrInternal, err)
	}

	err = s.stationRepo.UpdateSlot(ctx, slotID, stationRepo.SlotUpdateFields{
		SlotCode:      req.SlotCode,
		ConnectorType: domain.ConnectorType(req.ConnectorType),
		PowerRatingKW: req.PowerRatingKW,
		PricePerKWh:   req.PricePerKWh,
	})
	if err != nil {
		if errors.Is(err, stationRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("UpdateSlot: repository error for slot=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: UpdateSlot - repository error: %v", ErrInternal, err)
	}

	if err := s.slotsCache.InvalidateStation(ctx, slot.StationID); err != nil {
		s.logger.Warn("UpdateSlot: failed to invalidate slots cache for station=%s: %v", slot.StationID, err)
	}

	updated, err := s.stationRepo.GetSlotByID(ctx, slotID)
	if err != nil {
		s.logger.Error("UpdateSlot: failed to reload slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: UpdateSlot - failed to reload slot: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSlot: successfully updated slot id=%s", slotID)
	return models.FromDomainSlot(updated), nil
}

// UpdateAvailability sets the informational availability flag of a slot.
// The flag drives the operator dashboard; booking conflicts ignore it.
func (s *Service) UpdateAvailability(ctx context.Context, slotID string, status string) (*models.SlotResponse, error) {
	s.logger.Info("UpdateAvailability: slot=%s, status=%s", slotID, status)

	slotStatus := domain.SlotStatus(status)
	if !domain.ValidSlotStatus(slotStatus) {
		s.logger.Warn("UpdateAvailability: invalid status %q for slot=%s", status, slotID)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	slot, err := s.stationRepo.GetSlotByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, stationRepo.ErrSlotNotFound) {
			s.logger.Warn("UpdateAvailability: slot id=%s not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("UpdateAvailability: failed to get slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: UpdateAvailability - repository error: %v", ErrInternal, err)
	}

	if err := s.stationRepo.UpdateSlotStatus(ctx, slotID, slotStatus); err != nil {
		if errors.Is(err, stationRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("UpdateAvailability: repository error for slot=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: UpdateAvailability - repository error: %v", ErrInternal, err)
	}

	slot.SlotStatus = slotStatus
	s.logger.Info("UpdateAvailability: successfully set slot id=%s to %s", slotID, slotStatus)
	return models.FromDomainSlot(slot), nil
}

// validateSlotDefinition checks the fields shared by create and update.
func validateSlotDefinition(slotCode, connectorType string, powerRatingKW int, pricePerKWh float64) error {
	if slotCode == "" {
		return fmt.Errorf("%w: slotCode is required", ErrInvalidInput)
	}
	if pricePerKWh <= 0 {
		return fmt.Errorf("%w: pricePerKWh must be positive", ErrInvalidInput)
	}
	if !domain.IsValidCombination(domain.ConnectorType(connectorType), powerRatingKW) {
		return fmt.Errorf("%w: %s at %dkW", ErrInvalidCombination, connectorType, powerRatingKW)
	}
	return nil
}
