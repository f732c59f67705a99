package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusExpired    BookingStatus = "expired"
)

// Booking represents a charging-slot reservation.
//
// Customer fields are snapshots captured at booking time, not live references,
// so history stays stable when the EV owner profile changes. The same applies
// to StationName, SlotCode and PricePerKWh.
type Booking struct {
	ID            string
	BookingNumber string

	CustomerNic   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	StationID   string
	StationName string
	SlotID      string
	SlotCode    string

	ReservationStartTime time.Time
	ReservationEndTime   time.Time
	DurationMinutes      int

	Status BookingStatus

	PricePerKWh  float64
	EstimatedKWh float64
	TotalAmount  float64

	QRCode *string
	Notes  *string

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt *time.Time

	CancelledAt        *time.Time
	CancellationReason *string
}

// IsLive returns true if the booking still occupies its slot window.
// Only live bookings participate in conflict detection.
func (b *Booking) IsLive() bool {
	return b.Status != StatusCancelled && b.Status != StatusExpired
}

// CanBeCancelled returns true if the booking is in a state that permits
// cancellation. Completed, expired and already-cancelled bookings are terminal.
func (b *Booking) CanBeCancelled() bool {
	return b.Status != StatusCancelled && b.Status != StatusExpired && b.Status != StatusCompleted
}

// CanBeUpdated returns true if the booking window may still be modified.
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// OverlapsWindow reports whether the booking window intersects [start, end).
func (b *Booking) OverlapsWindow(start, end time.Time) bool {
	return Overlaps(b.ReservationStartTime, b.ReservationEndTime, start, end)
}

// Overlaps is the half-open interval overlap test used everywhere conflicts
// are decided: [aStart, aEnd) and [bStart, bEnd) overlap iff
// aStart < bEnd && bStart < aEnd. Touching boundaries do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// BookingFilter describes the conjunctive filters, sorting and pagination of
// a bookings listing. Role scoping is applied by the service layer through
// StationIDs (operator visibility) and CustomerNic (owner visibility).
type BookingFilter struct {
	StationID    *string
	StationIDs   []string // non-empty = restrict to these stations
	Status       *BookingStatus
	StartDate    *time.Time // inclusive lower bound on reservation start
	EndDate      *time.Time // inclusive upper bound on reservation start
	CustomerName *string    // case-insensitive substring
	CustomerNic  *string    // exact match

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string // "asc" or "desc"
}
