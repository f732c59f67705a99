package station

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
	"github.com/evcsm/EVCS-BookingService/pkg/dbmetrics"
	"github.com/evcsm/EVCS-BookingService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"station_id",
	"slot_code",
	"connector_type",
	"power_rating_kw",
	"price_per_kwh",
	"slot_status",
	"created_at",
	"updated_at",
}

// Repository reads stations and manages charging slots.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a station repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetStationByID fetches a station by its id.
func (r *Repository) GetStationByID(ctx context.Context, id string) (*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "station_name", "station_code", "station_type", "status", "operator_ids", "created_at", "updated_at",
	).
		From("stations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStationByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Station
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.StationName,
		&s.StationCode,
		&s.StationType,
		&s.Status,
		pq.Array(&s.OperatorIDs),
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrStationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStationByID - scan station: %v", ErrScanRow, err)
	}

	return &s, nil
}

// ListStationIDsByOperator returns the ids of every station operated by the
// given user. Used to scope operator visibility over bookings.
func (r *Repository) ListStationIDsByOperator(ctx context.Context, operatorID string) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("stations").
		Where(squirrel.Expr("? = ANY(operator_ids)", operatorID)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListStationIDsByOperator - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStationIDsByOperator - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stationIDs := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListStationIDsByOperator - scan id: %v", ErrScanRow, err)
		}
		stationIDs = append(stationIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStationIDsByOperator - rows error: %v", ErrScanRow, err)
	}

	return stationIDs, nil
}

// GetSlotByID fetches a slot by its id.
func (r *Repository) GetSlotByID(ctx context.Context, id string) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// ListSlotsByStation returns all slots of a station ordered by slot code.
func (r *Repository) ListSlotsByStation(ctx context.Context, stationID string) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"station_id": stationID}).
		OrderBy("slot_code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlotsByStation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlotsByStation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListSlotsByStation - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSlotsByStation - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// CreateSlot inserts a new slot.
func (r *Repository) CreateSlot(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.SlotStatus == "" {
		s.SlotStatus = domain.SlotAvailable
	}

	query, args, err := psqlbuilder.Insert("slots").
		Columns("id", "station_id", "slot_code", "connector_type", "power_rating_kw", "price_per_kwh", "slot_status").
		Values(s.ID, s.StationID, s.SlotCode, s.ConnectorType, s.PowerRatingKW, s.PricePerKWh, s.SlotStatus).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateSlot - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateSlot - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// SlotUpdateFields are the slot fields mutable through the update operation.
type SlotUpdateFields struct {
	SlotCode      string
	ConnectorType domain.ConnectorType
	PowerRatingKW int
	PricePerKWh   float64
}

// UpdateSlot persists the mutable slot fields and bumps updated_at.
func (r *Repository) UpdateSlot(ctx context.Context, id string, fields SlotUpdateFields) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("slot_code", fields.SlotCode).
		Set("connector_type", fields.ConnectorType).
		Set("power_rating_kw", fields.PowerRatingKW).
		Set("price_per_kwh", fields.PricePerKWh).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// UpdateSlotStatus sets the informational availability flag of a slot.
func (r *Repository) UpdateSlotStatus(ctx context.Context, id string, status domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("slot_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	err := row.Scan(
		&s.ID,
		&s.StationID,
		&s.SlotCode,
		&s.ConnectorType,
		&s.PowerRatingKW,
		&s.PricePerKWh,
		&s.SlotStatus,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
