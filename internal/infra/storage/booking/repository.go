package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
	"github.com/evcsm/EVCS-BookingService/pkg/dbmetrics"
	"github.com/evcsm/EVCS-BookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"booking_number",
	"customer_nic",
	"customer_name",
	"customer_email",
	"customer_phone",
	"station_id",
	"station_name",
	"slot_id",
	"slot_code",
	"reservation_start_time",
	"reservation_end_time",
	"duration_minutes",
	"status",
	"price_per_kwh",
	"estimated_kwh",
	"total_amount",
	"qr_code",
	"notes",
	"created_by",
	"created_at",
	"updated_at",
	"cancelled_at",
	"cancellation_reason",
}

// Repository is the bookings storage layer.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a bookings repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new booking. If the context carries an open transaction
// the insert joins it; booking creation always runs inside a serializable
// transaction together with the availability check so that check-then-insert
// cannot interleave with a concurrent creation.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"booking_number",
			"customer_nic",
			"customer_name",
			"customer_email",
			"customer_phone",
			"station_id",
			"station_name",
			"slot_id",
			"slot_code",
			"reservation_start_time",
			"reservation_end_time",
			"duration_minutes",
			"status",
			"price_per_kwh",
			"estimated_kwh",
			"total_amount",
			"qr_code",
			"notes",
			"created_by",
		).
		Values(
			b.ID,
			b.BookingNumber,
			b.CustomerNic,
			b.CustomerName,
			b.CustomerEmail,
			b.CustomerPhone,
			b.StationID,
			b.StationName,
			b.SlotID,
			b.SlotCode,
			b.ReservationStartTime,
			b.ReservationEndTime,
			b.DurationMinutes,
			b.Status,
			b.PricePerKWh,
			b.EstimatedKWh,
			b.TotalAmount,
			b.QRCode,
			b.Notes,
			b.CreatedBy,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	return b, nil
}

// GetByID fetches a booking by its id.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.getByCondition(ctx, squirrel.Eq{"id": id})
}

// GetByBookingNumber fetches a booking by its human-readable number.
func (r *Repository) GetByBookingNumber(ctx context.Context, number string) (*domain.Booking, error) {
	return r.getByCondition(ctx, squirrel.Eq{"booking_number": number})
}

func (r *Repository) getByCondition(ctx context.Context, cond squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(cond).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByCondition - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByCondition - scan booking: %v", ErrScanRow, err)
	}
	return b, nil
}

// List returns a page of bookings matching the filter plus the total count of
// matching rows. All filters are conjunctive.
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	conds := listConditions(filter)

	countBuilder := psqlbuilder.Select("COUNT(*)").From("bookings")
	for _, c := range conds {
		countBuilder = countBuilder.Where(c)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute count: %v", ErrExecQuery, err)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")
	for _, c := range conds {
		selectBuilder = selectBuilder.Where(c)
	}

	// Sort field resolution goes through the domain allow-list, never the raw
	// caller-supplied name.
	order := "DESC"
	if strings.EqualFold(filter.SortOrder, domain.SortOrderAsc) {
		order = "ASC"
	}
	selectBuilder = selectBuilder.OrderBy(domain.SortColumn(filter.SortBy) + " " + order)

	offset := uint64(filter.Page-1) * uint64(filter.PageSize)
	selectBuilder = selectBuilder.Offset(offset).Limit(uint64(filter.PageSize))

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func listConditions(filter domain.BookingFilter) []squirrel.Sqlizer {
	conds := make([]squirrel.Sqlizer, 0, 7)

	if filter.StationID != nil {
		conds = append(conds, squirrel.Eq{"station_id": *filter.StationID})
	}
	if len(filter.StationIDs) > 0 {
		conds = append(conds, squirrel.Eq{"station_id": filter.StationIDs})
	}
	if filter.Status != nil {
		conds = append(conds, squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		conds = append(conds, squirrel.GtOrEq{"reservation_start_time": *filter.StartDate})
	}
	if filter.EndDate != nil {
		conds = append(conds, squirrel.LtOrEq{"reservation_start_time": *filter.EndDate})
	}
	if filter.CustomerName != nil {
		conds = append(conds, squirrel.ILike{"customer_name": "%" + *filter.CustomerName + "%"})
	}
	if filter.CustomerNic != nil {
		conds = append(conds, squirrel.Eq{"customer_nic": *filter.CustomerNic})
	}

	return conds
}

// CountOverlapping counts live bookings on the slot whose window intersects
// [start, end). Inside a transaction the matching rows are locked with
// FOR UPDATE so a concurrent creation on the same slot serializes behind us.
// excludeID skips the booking being moved during an update.
func (r *Repository) CountOverlapping(ctx context.Context, slotID string, start, end time.Time, excludeID *string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings()}).
		Where(squirrel.Lt{"reservation_start_time": end}).
		Where(squirrel.Gt{"reservation_end_time": start})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: CountOverlapping - scan id: %v", ErrScanRow, err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - rows error: %v", ErrScanRow, err)
	}

	return count, nil
}

// ListBookedSlotIDs returns the distinct slot ids of a station that have at
// least one live booking overlapping [start, end).
func (r *Repository) ListBookedSlotIDs(ctx context.Context, stationID string, start, end time.Time) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT slot_id").
		From("bookings").
		Where(squirrel.Eq{"station_id": stationID}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings()}).
		Where(squirrel.Lt{"reservation_start_time": end}).
		Where(squirrel.Gt{"reservation_end_time": start}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedSlotIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedSlotIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slotIDs := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListBookedSlotIDs - scan slot_id: %v", ErrScanRow, err)
		}
		slotIDs = append(slotIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookedSlotIDs - rows error: %v", ErrScanRow, err)
	}

	return slotIDs, nil
}

// UpdateFields are the booking fields mutable through the update operation.
type UpdateFields struct {
	CustomerNic          string
	CustomerName         string
	CustomerEmail        string
	CustomerPhone        string
	ReservationStartTime time.Time
	ReservationEndTime   time.Time
	DurationMinutes      int
	PricePerKWh          float64
	EstimatedKWh         float64
	TotalAmount          float64
	Notes                *string
}

// Update persists the mutable booking fields and bumps updated_at.
func (r *Repository) Update(ctx context.Context, id string, fields UpdateFields) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("customer_nic", fields.CustomerNic).
		Set("customer_name", fields.CustomerName).
		Set("customer_email", fields.CustomerEmail).
		Set("customer_phone", fields.CustomerPhone).
		Set("reservation_start_time", fields.ReservationStartTime).
		Set("reservation_end_time", fields.ReservationEndTime).
		Set("duration_minutes", fields.DurationMinutes).
		Set("price_per_kwh", fields.PricePerKWh).
		Set("estimated_kwh", fields.EstimatedKWh).
		Set("total_amount", fields.TotalAmount).
		Set("notes", fields.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel marks a booking cancelled. Cancellation is a status transition, not
// a delete; the row is kept for history.
func (r *Repository) Cancel(ctx context.Context, id string, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("cancellation_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// NextBookingSequence atomically increments and returns the per-day booking
// counter. The upsert replaces the original count-then-format pattern, which
// could hand out the same number to concurrent creations.
func (r *Repository) NextBookingSequence(ctx context.Context, day time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_counters").
		Columns("day", "seq").
		Values(day.UTC().Format(domain.BookingNumberDateFormat), 1).
		Suffix("ON CONFLICT (day) DO UPDATE SET seq = booking_counters.seq + 1 RETURNING seq").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: NextBookingSequence - build upsert query: %v", ErrBuildQuery, err)
	}

	var seq int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&seq); err != nil {
		return 0, fmt.Errorf("%w: NextBookingSequence - execute upsert: %v", ErrExecQuery, err)
	}

	return seq, nil
}

func inactiveStatusStrings() []string {
	statuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt sql.NullTime
	var updatedAt, cancelledAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.BookingNumber,
		&b.CustomerNic,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.StationID,
		&b.StationName,
		&b.SlotID,
		&b.SlotCode,
		&b.ReservationStartTime,
		&b.ReservationEndTime,
		&b.DurationMinutes,
		&b.Status,
		&b.PricePerKWh,
		&b.EstimatedKWh,
		&b.TotalAmount,
		&b.QRCode,
		&b.Notes,
		&b.CreatedBy,
		&createdAt,
		&updatedAt,
		&cancelledAt,
		&b.CancellationReason,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	if updatedAt.Valid {
		b.UpdatedAt = &updatedAt.Time
	}
	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
