package domain

import (
	"fmt"
	"time"
)

// Booking business rules
const (
	// BookingHorizonDays caps how far ahead a reservation may start.
	BookingHorizonDays = 7

	// ModificationCutoffHours is the minimum lead time before the reservation
	// start required to update or cancel a booking.
	ModificationCutoffHours = 12

	// QRActivationBufferHours is how long before the reservation start a QR
	// check-in is accepted.
	QRActivationBufferHours = 1
)

// Booking number format: BK<yyyymmdd><0001-sequence>, sequence scoped per UTC day.
const (
	BookingNumberPrefix     = "BK"
	BookingNumberDateFormat = "20060102"
)

// Pagination defaults for booking listings.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Sorting defaults for booking listings.
const (
	DefaultSortBy    = "createdAt"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
	DefaultSortOrder = SortOrderDesc
)

// sortableFields is the allow-list mapping caller-supplied sort names to
// columns. Anything outside it falls back to the default sort.
var sortableFields = map[string]string{
	"createdAt":            "created_at",
	"reservationStartTime": "reservation_start_time",
	"bookingNumber":        "booking_number",
	"customerName":         "customer_name",
	"status":               "status",
	"totalAmount":          "total_amount",
}

// SortColumn resolves a caller-supplied sort field to a column from the
// allow-list, falling back to the created_at default.
func SortColumn(sortBy string) string {
	if col, ok := sortableFields[sortBy]; ok {
		return col
	}
	return sortableFields[DefaultSortBy]
}

// InactiveStatuses are the statuses excluded from conflict detection.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusExpired,
}

// ValidStatuses lists every recognised booking status.
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusExpired,
}

// ParseBookingStatus validates a status string.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	for _, valid := range ValidStatuses {
		if status == valid {
			return status, true
		}
	}
	return "", false
}

// FormatBookingNumber renders a booking number for the given UTC day and
// per-day sequence value.
func FormatBookingNumber(day time.Time, seq int64) string {
	return fmt.Sprintf("%s%s%04d", BookingNumberPrefix, day.UTC().Format(BookingNumberDateFormat), seq)
}
