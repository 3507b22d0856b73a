package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/repository"
	apperr "github.com/careops/careops-api/pkg/errors"
)

// Service owns the booking correctness contract: slot derivation, conflict
// filtering, and double-booking avoidance via the persistence constraint.
type Service struct {
	workspaces    repository.WorkspaceRepository
	serviceTypes  repository.ServiceTypeRepository
	bookings      repository.BookingRepository
	contacts      repository.ContactRepository
	conversations repository.ConversationRepository
	outbox        repository.OutboxRepository
	policy        ConflictPolicy
}

type Option func(*Service)

// WithConflictPolicy overrides the default exact-start conflict policy.
func WithConflictPolicy(p ConflictPolicy) Option {
	return func(s *Service) { s.policy = p }
}

func NewService(
	workspaces repository.WorkspaceRepository,
	serviceTypes repository.ServiceTypeRepository,
	bookings repository.BookingRepository,
	contacts repository.ContactRepository,
	conversations repository.ConversationRepository,
	outbox repository.OutboxRepository,
	opts ...Option,
) *Service {
	s := &Service{
		workspaces:    workspaces,
		serviceTypes:  serviceTypes,
		bookings:      bookings,
		contacts:      contacts,
		conversations: conversations,
		outbox:        outbox,
		policy:        PolicyExactStart,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListAvailableSlots returns the bookable start times for a service on a
// calendar date. An unknown service type is NotFound; a known service with
// no windows on that weekday yields an empty list.
func (s *Service) ListAvailableSlots(ctx context.Context, serviceTypeID uuid.UUID, date time.Time) ([]time.Time, error) {
	serviceType, err := s.serviceTypes.Get(ctx, serviceTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("service type", err)
		}
		return nil, fmt.Errorf("failed to get service type: %w", err)
	}

	templates, err := s.serviceTypes.ListAvailabilitySlotsForDay(ctx, serviceTypeID, int(date.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("failed to list availability slots: %w", err)
	}
	if len(templates) == 0 {
		return []time.Time{}, nil
	}

	candidates, err := GenerateSlots(date, serviceType.DurationMinutes, templates)
	if err != nil {
		return nil, fmt.Errorf("failed to generate slots: %w", err)
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	existing, err := s.bookings.ListForServiceDate(ctx, serviceTypeID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return FilterConflicts(candidates, existing, serviceType.DurationMinutes, s.policy), nil
}

// CreateBooking inserts a pending booking. The availability check and the
// insert are not one atomic read-then-write; the partial unique index on
// non-cancelled bookings is what rejects the losing side of a race, surfaced
// as SlotAlreadyBooked.
func (s *Service) CreateBooking(ctx context.Context, workspaceID, contactID uuid.UUID, req *model.CreateBookingRequest) (*model.Booking, error) {
	workspace, err := s.workspaces.Get(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("workspace", err)
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if !workspace.IsActive {
		return nil, apperr.WorkspaceInactive()
	}

	if _, err := s.serviceTypes.Get(ctx, req.ServiceTypeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("service type", err)
		}
		return nil, fmt.Errorf("failed to get service type: %w", err)
	}

	booking := &model.Booking{
		WorkspaceID:   workspaceID,
		ContactID:     contactID,
		ServiceTypeID: req.ServiceTypeID,
		ScheduledAt:   req.ScheduledAt,
		Status:        model.BookingStatusPending,
		Notes:         req.Notes,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrDuplicateBooking) {
			return nil, apperr.SlotAlreadyBooked()
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.emitEvent(ctx, workspaceID, model.EventBookingCreated, booking)

	return booking, nil
}

// CreatePublicBooking is the unauthenticated flow: resolve or create the
// contact by email, open a conversation for new contacts, then book.
func (s *Service) CreatePublicBooking(ctx context.Context, req *model.PublicBookingRequest) (*model.Booking, error) {
	contact, err := s.resolveContact(ctx, req.WorkspaceID, &req.Contact)
	if err != nil {
		return nil, err
	}
	return s.CreateBooking(ctx, req.WorkspaceID, contact.ID, &req.Booking)
}

func (s *Service) resolveContact(ctx context.Context, workspaceID uuid.UUID, req *model.CreateContactRequest) (*model.Contact, error) {
	if req.Email != "" {
		contact, err := s.contacts.GetByEmail(ctx, workspaceID, req.Email)
		if err == nil {
			return contact, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up contact: %w", err)
		}
	}

	contact := &model.Contact{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Metadata:    req.Metadata,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	conversation := &model.Conversation{
		WorkspaceID: workspaceID,
		ContactID:   contact.ID,
		Status:      model.ConversationStatusActive,
	}
	if err := s.conversations.Create(ctx, conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return contact, nil
}

// UpdateBookingStatus validates against the fixed enum and applies the
// change. Any status may follow any other; no transition ordering is
// enforced.
func (s *Service) UpdateBookingStatus(ctx context.Context, id uuid.UUID, newStatus model.BookingStatus) (*model.Booking, error) {
	if !model.ValidBookingStatus(newStatus) {
		allowed := make([]string, len(model.BookingStatuses))
		for i, v := range model.BookingStatuses {
			allowed[i] = string(v)
		}
		return nil, apperr.InvalidStatus(string(newStatus), allowed)
	}

	booking, err := s.bookings.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("booking", err)
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	s.emitEvent(ctx, booking.WorkspaceID, model.EventBookingStatusChanged, booking)

	return booking, nil
}

func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookings.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("booking", err)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (s *Service) ListBookings(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	bookings, err := s.bookings.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// emitEvent records a domain event in the outbox. An outbox failure never
// rolls back the write that produced it.
func (s *Service) emitEvent(ctx context.Context, workspaceID uuid.UUID, eventType string, payload interface{}) {
	if s.outbox == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = s.outbox.Create(ctx, &model.OutboxEvent{
		WorkspaceID: workspaceID,
		EventType:   eventType,
		Payload:     data,
	})
}
