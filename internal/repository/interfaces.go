package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/careops/careops-api/internal/model"
)

// ErrDuplicateBooking is returned by BookingRepository.Create when the
// (workspace_id, service_type_id, scheduled_at) uniqueness constraint for
// non-cancelled bookings rejects the insert. The constraint, not an
// application-level read, is what prevents double booking.
var ErrDuplicateBooking = errors.New("duplicate booking for slot")

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// All repository interfaces in one file
type (
	WorkspaceRepository interface {
		Create(ctx context.Context, ws *model.Workspace) error
		Get(ctx context.Context, id uuid.UUID) (*model.Workspace, error)
		Update(ctx context.Context, ws *model.Workspace) error
		SetActive(ctx context.Context, id uuid.UUID, active bool) error
	}

	ServiceTypeRepository interface {
		Create(ctx context.Context, st *model.ServiceType) error
		Get(ctx context.Context, id uuid.UUID) (*model.ServiceType, error)
		List(ctx context.Context, workspaceID uuid.UUID) ([]*model.ServiceType, error)
		ExistsForWorkspace(ctx context.Context, workspaceID uuid.UUID) (bool, error)
		CreateAvailabilitySlot(ctx context.Context, slot *model.AvailabilitySlot) error
		ListAvailabilitySlots(ctx context.Context, serviceTypeID uuid.UUID) ([]*model.AvailabilitySlot, error)
		ListAvailabilitySlotsForDay(ctx context.Context, serviceTypeID uuid.UUID, dayOfWeek int) ([]*model.AvailabilitySlot, error)
		SlotsExistForWorkspace(ctx context.Context, workspaceID uuid.UUID) (bool, error)
	}

	BookingRepository interface {
		Create(ctx context.Context, booking *model.Booking) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) (*model.Booking, error)
		ListForServiceDate(ctx context.Context, serviceTypeID uuid.UUID, dayStart, dayEnd time.Time) ([]*model.Booking, error)
		CountInRange(ctx context.Context, workspaceID uuid.UUID, from, to time.Time, status model.BookingStatus) (int, error)
	}

	ContactRepository interface {
		Create(ctx context.Context, contact *model.Contact) error
		Get(ctx context.Context, id uuid.UUID) (*model.Contact, error)
		GetByEmail(ctx context.Context, workspaceID uuid.UUID, email string) (*model.Contact, error)
		List(ctx context.Context, workspaceID uuid.UUID) ([]*model.Contact, error)
	}

	ConversationRepository interface {
		Create(ctx context.Context, conv *model.Conversation) error
		Get(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
		GetActiveForContact(ctx context.Context, workspaceID, contactID uuid.UUID) (*model.Conversation, error)
		List(ctx context.Context, workspaceID uuid.UUID) ([]*model.Conversation, error)
		CreateMessage(ctx context.Context, msg *model.Message) error
		ListMessages(ctx context.Context, conversationID uuid.UUID) ([]*model.Message, error)
		CountUnread(ctx context.Context, workspaceID uuid.UUID) (int, error)
		MarkMessagesRead(ctx context.Context, conversationID uuid.UUID) error
	}

	IntegrationRepository interface {
		Create(ctx context.Context, integration *model.Integration) error
		List(ctx context.Context, workspaceID uuid.UUID) ([]*model.Integration, error)
		ExistsForWorkspace(ctx context.Context, workspaceID uuid.UUID) (bool, error)
	}

	FormTemplateRepository interface {
		Create(ctx context.Context, form *model.FormTemplate) error
		List(ctx context.Context, workspaceID uuid.UUID) ([]*model.FormTemplate, error)
		ContactFormExists(ctx context.Context, workspaceID uuid.UUID) (bool, error)
		PostBookingFormExists(ctx context.Context, workspaceID uuid.UUID) (bool, error)
	}

	InventoryRepository interface {
		Create(ctx context.Context, item *model.InventoryItem) error
		Get(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
		List(ctx context.Context, workspaceID uuid.UUID) ([]*model.InventoryItem, error)
		AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (*model.InventoryItem, error)
		ExistsForWorkspace(ctx context.Context, workspaceID uuid.UUID) (bool, error)
		ListLowStock(ctx context.Context, workspaceID uuid.UUID) ([]*model.InventoryItem, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		AssignWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) error
		StaffExistsForWorkspace(ctx context.Context, workspaceID uuid.UUID) (bool, error)
	}

	AlertRepository interface {
		Create(ctx context.Context, alert *model.Alert) error
		List(ctx context.Context, workspaceID uuid.UUID) ([]*model.Alert, error)
		MarkRead(ctx context.Context, id uuid.UUID) error
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkPublished(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID) error
	}
)
