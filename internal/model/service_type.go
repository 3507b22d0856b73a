package model

import (
	"github.com/google/uuid"
)

// ServiceType is a bookable offering with a fixed duration. Duration changes
// never rewrite existing bookings.
type ServiceType struct {
	Base
	WorkspaceID     uuid.UUID `db:"workspace_id" json:"workspace_id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Location        string    `db:"location" json:"location,omitempty"`
	IsActive        bool      `db:"is_active" json:"is_active"`
}

// AvailabilitySlot is a recurring weekly open window for a service type.
// DayOfWeek uses 0=Sunday..6=Saturday. Overlapping windows are permitted;
// slot generation de-duplicates identical start times.
type AvailabilitySlot struct {
	Base
	ServiceTypeID uuid.UUID `db:"service_type_id" json:"service_type_id"`
	DayOfWeek     int       `db:"day_of_week" json:"day_of_week"`
	StartTime     string    `db:"start_time" json:"start_time"`
	EndTime       string    `db:"end_time" json:"end_time"`
}

type CreateServiceTypeRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
	Location        string `json:"location"`
}

type CreateAvailabilitySlotRequest struct {
	ServiceTypeID uuid.UUID `json:"service_type_id" binding:"required"`
	DayOfWeek     int       `json:"day_of_week" binding:"min=0,max=6"`
	StartTime     string    `json:"start_time" binding:"required,clocktime"`
	EndTime       string    `json:"end_time" binding:"required,clocktime"`
}
