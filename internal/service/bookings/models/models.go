// Package models holds the request/response models of the bookings service.
package models

import (
	"time"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
)

// Requester identifies the authenticated caller for access decisions.
type Requester struct {
	UserID string
	Role   domain.UserRole
	Nic    string // set for EV owner tokens only
}

// BookingResponse is the external representation of a booking.
type BookingResponse struct {
	ID            string `json:"id"`
	BookingNumber string `json:"bookingNumber"`

	CustomerNic   string `json:"customerNic"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`

	StationID   string `json:"stationId"`
	StationName string `json:"stationName"`
	SlotID      string `json:"slotId"`
	SlotCode    string `json:"slotCode"`

	ReservationStartTime time.Time `json:"reservationStartTime"`
	ReservationEndTime   time.Time `json:"reservationEndTime"`
	DurationMinutes      int       `json:"durationMinutes"`
	Status               string    `json:"status"`

	PricePerKWh  float64 `json:"pricePerKWh"`
	EstimatedKWh float64 `json:"estimatedKWh"`
	TotalAmount  float64 `json:"totalAmount"`

	QRCode *string `json:"qrCode,omitempty"`
	Notes  *string `json:"notes,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`

	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
}

// BookingListResponse is a page of bookings with the pagination envelope.
type BookingListResponse struct {
	Bookings        []*BookingResponse `json:"bookings"`
	TotalCount      int64              `json:"totalCount"`
	Page            int                `json:"page"`
	PageSize        int                `json:"pageSize"`
	TotalPages      int                `json:"totalPages"`
	HasNextPage     bool               `json:"hasNextPage"`
	HasPreviousPage bool               `json:"hasPreviousPage"`
}

// ListBookingsRequest carries listing filters, pagination and the requester.
type ListBookingsRequest struct {
	StationID    *string
	Status       *string
	StartDate    *time.Time
	EndDate      *time.Time
	CustomerName *string
	CustomerNic  *string

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string

	Requester Requester
}

// CancelBookingRequest carries the cancellation input and the requester.
type CancelBookingRequest struct {
	Reason    *string
	Requester Requester
}

// FromDomainBooking converts a domain booking to its external representation.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                   b.ID,
		BookingNumber:        b.BookingNumber,
		CustomerNic:          b.CustomerNic,
		CustomerName:         b.CustomerName,
		CustomerEmail:        b.CustomerEmail,
		CustomerPhone:        b.CustomerPhone,
		StationID:            b.StationID,
		StationName:          b.StationName,
		SlotID:               b.SlotID,
		SlotCode:             b.SlotCode,
		ReservationStartTime: b.ReservationStartTime,
		ReservationEndTime:   b.ReservationEndTime,
		DurationMinutes:      b.DurationMinutes,
		Status:               string(b.Status),
		PricePerKWh:          b.PricePerKWh,
		EstimatedKWh:         b.EstimatedKWh,
		TotalAmount:          b.TotalAmount,
		QRCode:               b.QRCode,
		Notes:                b.Notes,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
		CancelledAt:          b.CancelledAt,
		CancellationReason:   b.CancellationReason,
	}
}

// FromDomainBookingList converts a booking page to the external envelope.
func FromDomainBookingList(bookings []*domain.Booking, total int64, page, pageSize int) *BookingListResponse {
	items := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, FromDomainBooking(b))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &BookingListResponse{
		Bookings:        items,
		TotalCount:      total,
		Page:            page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
