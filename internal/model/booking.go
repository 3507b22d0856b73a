package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists every valid status. Transitions are unconstrained:
// any status may follow any other.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCompleted,
	BookingStatusNoShow,
	BookingStatusCancelled,
}

// ValidBookingStatus reports whether s is in the fixed status enum.
func ValidBookingStatus(s BookingStatus) bool {
	for _, v := range BookingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Booking struct {
	Base
	WorkspaceID   uuid.UUID     `db:"workspace_id" json:"workspace_id"`
	ContactID     uuid.UUID     `db:"contact_id" json:"contact_id"`
	ServiceTypeID uuid.UUID     `db:"service_type_id" json:"service_type_id"`
	ScheduledAt   time.Time     `db:"scheduled_at" json:"scheduled_at"`
	Status        BookingStatus `db:"status" json:"status"`
	Notes         string        `db:"notes" json:"notes,omitempty"`
}

type CreateBookingRequest struct {
	ContactID     *uuid.UUID `json:"contact_id"`
	ServiceTypeID uuid.UUID  `json:"service_type_id" binding:"required"`
	ScheduledAt   time.Time  `json:"scheduled_at" binding:"required"`
	Notes         string     `json:"notes"`
}

// PublicBookingRequest is the unauthenticated booking flow: booking details
// plus enough contact information to find or create the contact.
type PublicBookingRequest struct {
	WorkspaceID uuid.UUID            `json:"workspace_id" binding:"required"`
	Booking     CreateBookingRequest `json:"booking_data" binding:"required"`
	Contact     CreateContactRequest `json:"contact_data" binding:"required"`
}

type UpdateBookingStatusRequest struct {
	NewStatus BookingStatus `json:"new_status" binding:"required"`
}

type BookingFilters struct {
	WorkspaceID   uuid.UUID
	ServiceTypeID uuid.UUID
	Status        BookingStatus
	FromDate      time.Time
	ToDate        time.Time
}
