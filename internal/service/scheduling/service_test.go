package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/repository"
	apperr "github.com/careops/careops-api/pkg/errors"
)

// In-memory fakes. The booking fake enforces the same uniqueness rule the
// partial index does, so the race behaves like the real store.

type fakeWorkspaceRepo struct {
	workspaces map[uuid.UUID]*model.Workspace
}

func (f *fakeWorkspaceRepo) Create(_ context.Context, ws *model.Workspace) error {
	ws.ID = uuid.New()
	f.workspaces[ws.ID] = ws
	return nil
}

func (f *fakeWorkspaceRepo) Get(_ context.Context, id uuid.UUID) (*model.Workspace, error) {
	ws, ok := f.workspaces[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return ws, nil
}

func (f *fakeWorkspaceRepo) Update(_ context.Context, ws *model.Workspace) error {
	f.workspaces[ws.ID] = ws
	return nil
}

func (f *fakeWorkspaceRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	ws, ok := f.workspaces[id]
	if !ok {
		return repository.ErrNotFound
	}
	ws.IsActive = active
	return nil
}

type fakeServiceTypeRepo struct {
	types map[uuid.UUID]*model.ServiceType
	slots []*model.AvailabilitySlot
}

func (f *fakeServiceTypeRepo) Create(_ context.Context, st *model.ServiceType) error {
	st.ID = uuid.New()
	f.types[st.ID] = st
	return nil
}

func (f *fakeServiceTypeRepo) Get(_ context.Context, id uuid.UUID) (*model.ServiceType, error) {
	st, ok := f.types[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return st, nil
}

func (f *fakeServiceTypeRepo) List(_ context.Context, workspaceID uuid.UUID) ([]*model.ServiceType, error) {
	var out []*model.ServiceType
	for _, st := range f.types {
		if st.WorkspaceID == workspaceID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeServiceTypeRepo) ExistsForWorkspace(_ context.Context, workspaceID uuid.UUID) (bool, error) {
	for _, st := range f.types {
		if st.WorkspaceID == workspaceID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeServiceTypeRepo) CreateAvailabilitySlot(_ context.Context, slot *model.AvailabilitySlot) error {
	slot.ID = uuid.New()
	f.slots = append(f.slots, slot)
	return nil
}

func (f *fakeServiceTypeRepo) ListAvailabilitySlots(_ context.Context, serviceTypeID uuid.UUID) ([]*model.AvailabilitySlot, error) {
	var out []*model.AvailabilitySlot
	for _, s := range f.slots {
		if s.ServiceTypeID == serviceTypeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServiceTypeRepo) ListAvailabilitySlotsForDay(_ context.Context, serviceTypeID uuid.UUID, day int) ([]*model.AvailabilitySlot, error) {
	var out []*model.AvailabilitySlot
	for _, s := range f.slots {
		if s.ServiceTypeID == serviceTypeID && s.DayOfWeek == day {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServiceTypeRepo) SlotsExistForWorkspace(_ context.Context, workspaceID uuid.UUID) (bool, error) {
	for _, s := range f.slots {
		if st, ok := f.types[s.ServiceTypeID]; ok && st.WorkspaceID == workspaceID {
			return true, nil
		}
	}
	return false, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*model.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*model.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.bookings {
		if existing.Status == model.BookingStatusCancelled {
			continue
		}
		if existing.WorkspaceID == b.WorkspaceID &&
			existing.ServiceTypeID == b.ServiceTypeID &&
			existing.ScheduledAt.Equal(b.ScheduledAt) {
			return repository.ErrDuplicateBooking
		}
	}

	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	b.UpdatedAt = time.Now()
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) Get(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) List(_ context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Booking
	for _, b := range f.bookings {
		if b.WorkspaceID != filters.WorkspaceID {
			continue
		}
		if filters.Status != "" && b.Status != filters.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.BookingStatus) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return b, nil
}

func (f *fakeBookingRepo) ListForServiceDate(_ context.Context, serviceTypeID uuid.UUID, dayStart, dayEnd time.Time) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Booking
	for _, b := range f.bookings {
		if b.ServiceTypeID != serviceTypeID {
			continue
		}
		if b.ScheduledAt.Before(dayStart) || !b.ScheduledAt.Before(dayEnd) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) CountInRange(_ context.Context, workspaceID uuid.UUID, from, to time.Time, status model.BookingStatus) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, b := range f.bookings {
		if b.WorkspaceID != workspaceID {
			continue
		}
		if b.ScheduledAt.Before(from) || !b.ScheduledAt.Before(to) {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		count++
	}
	return count, nil
}

type fakeContactRepo struct {
	contacts map[uuid.UUID]*model.Contact
}

func (f *fakeContactRepo) Create(_ context.Context, c *model.Contact) error {
	c.ID = uuid.New()
	f.contacts[c.ID] = c
	return nil
}

func (f *fakeContactRepo) Get(_ context.Context, id uuid.UUID) (*model.Contact, error) {
	c, ok := f.contacts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeContactRepo) GetByEmail(_ context.Context, workspaceID uuid.UUID, email string) (*model.Contact, error) {
	for _, c := range f.contacts {
		if c.WorkspaceID == workspaceID && c.Email == email {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeContactRepo) List(_ context.Context, workspaceID uuid.UUID) ([]*model.Contact, error) {
	var out []*model.Contact
	for _, c := range f.contacts {
		if c.WorkspaceID == workspaceID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeConversationRepo struct {
	conversations map[uuid.UUID]*model.Conversation
	messages      []*model.Message
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[uuid.UUID]*model.Conversation)}
}

func (f *fakeConversationRepo) Create(_ context.Context, c *model.Conversation) error {
	c.ID = uuid.New()
	f.conversations[c.ID] = c
	return nil
}

func (f *fakeConversationRepo) Get(_ context.Context, id uuid.UUID) (*model.Conversation, error) {
	c, ok := f.conversations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeConversationRepo) GetActiveForContact(_ context.Context, workspaceID, contactID uuid.UUID) (*model.Conversation, error) {
	for _, c := range f.conversations {
		if c.WorkspaceID == workspaceID && c.ContactID == contactID && c.Status == model.ConversationStatusActive {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeConversationRepo) List(_ context.Context, workspaceID uuid.UUID) ([]*model.Conversation, error) {
	var out []*model.Conversation
	for _, c := range f.conversations {
		if c.WorkspaceID == workspaceID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConversationRepo) CreateMessage(_ context.Context, m *model.Message) error {
	m.ID = uuid.New()
	f.messages = append(f.messages, m)
	return nil
}

func (f *fakeConversationRepo) ListMessages(_ context.Context, conversationID uuid.UUID) ([]*model.Message, error) {
	var out []*model.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeConversationRepo) CountUnread(_ context.Context, workspaceID uuid.UUID) (int, error) {
	count := 0
	for _, m := range f.messages {
		conv, ok := f.conversations[m.ConversationID]
		if ok && conv.WorkspaceID == workspaceID && !m.IsRead && m.SenderType == model.SenderTypeCustomer {
			count++
		}
	}
	return count, nil
}

func (f *fakeConversationRepo) MarkMessagesRead(_ context.Context, conversationID uuid.UUID) error {
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			m.IsRead = true
		}
	}
	return nil
}

type fakeOutboxRepo struct {
	mu     sync.Mutex
	events []*model.OutboxEvent
}

func (f *fakeOutboxRepo) Create(_ context.Context, e *model.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = uuid.New()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeOutboxRepo) GetPendingEventsWithLock(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.events) > limit {
		return f.events[:limit], nil
	}
	return f.events, nil
}

func (f *fakeOutboxRepo) MarkPublished(_ context.Context, _ uuid.UUID) error { return nil }
func (f *fakeOutboxRepo) MarkFailed(_ context.Context, _ uuid.UUID) error   { return nil }

type schedulingFixture struct {
	svc         *Service
	workspaces  *fakeWorkspaceRepo
	types       *fakeServiceTypeRepo
	bookings    *fakeBookingRepo
	contacts    *fakeContactRepo
	outbox      *fakeOutboxRepo
	workspace   *model.Workspace
	serviceType *model.ServiceType
}

func newFixture(t *testing.T, opts ...Option) *schedulingFixture {
	t.Helper()

	workspaces := &fakeWorkspaceRepo{workspaces: make(map[uuid.UUID]*model.Workspace)}
	types := &fakeServiceTypeRepo{types: make(map[uuid.UUID]*model.ServiceType)}
	bookings := newFakeBookingRepo()
	contacts := &fakeContactRepo{contacts: make(map[uuid.UUID]*model.Contact)}
	conversations := newFakeConversationRepo()
	outbox := &fakeOutboxRepo{}

	ws := &model.Workspace{Name: "Shine Salon", Timezone: "UTC", IsActive: true}
	require.NoError(t, workspaces.Create(context.Background(), ws))

	st := &model.ServiceType{WorkspaceID: ws.ID, Name: "Haircut", DurationMinutes: 30, IsActive: true}
	require.NoError(t, types.Create(context.Background(), st))

	return &schedulingFixture{
		svc:         NewService(workspaces, types, bookings, contacts, conversations, outbox, opts...),
		workspaces:  workspaces,
		types:       types,
		bookings:    bookings,
		contacts:    contacts,
		outbox:      outbox,
		workspace:   ws,
		serviceType: st,
	}
}

func (fx *schedulingFixture) addWindow(t *testing.T, day int, start, end string) {
	t.Helper()
	err := fx.types.CreateAvailabilitySlot(context.Background(), &model.AvailabilitySlot{
		ServiceTypeID: fx.serviceType.ID,
		DayOfWeek:     day,
		StartTime:     start,
		EndTime:       end,
	})
	require.NoError(t, err)
}

func TestListAvailableSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("returns generated slots for the date", func(t *testing.T) {
		fx := newFixture(t)
		fx.addWindow(t, 0, "09:00:00", "10:00:00")

		slots, err := fx.svc.ListAvailableSlots(ctx, fx.serviceType.ID, sunday)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{at(9, 0), at(9, 30)}, slots)
	})

	t.Run("booked slot is excluded, later slot survives", func(t *testing.T) {
		fx := newFixture(t)
		fx.addWindow(t, 0, "09:00:00", "10:00:00")

		err := fx.bookings.Create(ctx, &model.Booking{
			WorkspaceID:   fx.workspace.ID,
			ServiceTypeID: fx.serviceType.ID,
			ScheduledAt:   at(9, 0),
			Status:        model.BookingStatusConfirmed,
		})
		require.NoError(t, err)

		slots, err := fx.svc.ListAvailableSlots(ctx, fx.serviceType.ID, sunday)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{at(9, 30)}, slots)
	})

	t.Run("day without windows yields empty list, not an error", func(t *testing.T) {
		fx := newFixture(t)
		fx.addWindow(t, 3, "09:00:00", "10:00:00")

		slots, err := fx.svc.ListAvailableSlots(ctx, fx.serviceType.ID, sunday)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("unknown service type is not found", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.svc.ListAvailableSlots(ctx, uuid.New(), sunday)
		assert.True(t, apperr.Is(err, apperr.ErrNotFound))
	})
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending booking and emits event", func(t *testing.T) {
		fx := newFixture(t)

		booking, err := fx.svc.CreateBooking(ctx, fx.workspace.ID, uuid.New(), &model.CreateBookingRequest{
			ServiceTypeID: fx.serviceType.ID,
			ScheduledAt:   at(9, 0),
			Notes:         "first visit",
		})
		require.NoError(t, err)
		assert.Equal(t, model.BookingStatusPending, booking.Status)
		assert.NotEqual(t, uuid.Nil, booking.ID)

		require.Len(t, fx.outbox.events, 1)
		assert.Equal(t, model.EventBookingCreated, fx.outbox.events[0].EventType)
	})

	t.Run("inactive workspace is rejected", func(t *testing.T) {
		fx := newFixture(t)
		fx.workspace.IsActive = false

		_, err := fx.svc.CreateBooking(ctx, fx.workspace.ID, uuid.New(), &model.CreateBookingRequest{
			ServiceTypeID: fx.serviceType.ID,
			ScheduledAt:   at(9, 0),
		})
		assert.True(t, apperr.Is(err, apperr.ErrWorkspaceInactive))
	})

	t.Run("unknown workspace is not found", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.svc.CreateBooking(ctx, uuid.New(), uuid.New(), &model.CreateBookingRequest{
			ServiceTypeID: fx.serviceType.ID,
			ScheduledAt:   at(9, 0),
		})
		assert.True(t, apperr.Is(err, apperr.ErrNotFound))
	})

	t.Run("same slot twice is rejected as already booked", func(t *testing.T) {
		fx := newFixture(t)
		req := &model.CreateBookingRequest{
			ServiceTypeID: fx.serviceType.ID,
			ScheduledAt:   at(9, 0),
		}

		_, err := fx.svc.CreateBooking(ctx, fx.workspace.ID, uuid.New(), req)
		require.NoError(t, err)

		_, err = fx.svc.CreateBooking(ctx, fx.workspace.ID, uuid.New(), req)
		assert.True(t, apperr.Is(err, apperr.ErrSlotAlreadyBooked))
	})

	t.Run("concurrent bookings for one slot produce exactly one row", func(t *testing.T) {
		fx := newFixture(t)
		req := &model.CreateBookingRequest{
			ServiceTypeID: fx.serviceType.ID,
			ScheduledAt:   at(9, 0),
		}

		const callers = 8
		errs := make([]error, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				reqCopy := *req
				_, errs[i] = fx.svc.CreateBooking(ctx, fx.workspace.ID, uuid.New(), &reqCopy)
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			} else {
				assert.True(t, apperr.Is(err, apperr.ErrSlotAlreadyBooked), "unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Len(t, fx.bookings.bookings, 1)
	})

	t.Run("cancelled booking frees the slot", func(t *testing.T) {
		fx := newFixture(t)
		req := &model.CreateBookingRequest{
			ServiceTypeID: fx.serviceType.ID,
			ScheduledAt:   at(9, 0),
		}

		first, err := fx.svc.CreateBooking(ctx, fx.workspace.ID, uuid.New(), req)
		require.NoError(t, err)

		_, err = fx.svc.UpdateBookingStatus(ctx, first.ID, model.BookingStatusCancelled)
		require.NoError(t, err)

		_, err = fx.svc.CreateBooking(ctx, fx.workspace.ID, uuid.New(), req)
		assert.NoError(t, err)
	})
}

func TestCreatePublicBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("creates contact and conversation for new email", func(t *testing.T) {
		fx := newFixture(t)

		booking, err := fx.svc.CreatePublicBooking(ctx, &model.PublicBookingRequest{
			WorkspaceID: fx.workspace.ID,
			Booking: model.CreateBookingRequest{
				ServiceTypeID: fx.serviceType.ID,
				ScheduledAt:   at(9, 0),
			},
			Contact: model.CreateContactRequest{
				Name:  "Dana",
				Email: "dana@example.com",
			},
		})
		require.NoError(t, err)
		assert.Len(t, fx.contacts.contacts, 1)

		contact, err := fx.contacts.GetByEmail(ctx, fx.workspace.ID, "dana@example.com")
		require.NoError(t, err)
		assert.Equal(t, contact.ID, booking.ContactID)
	})

	t.Run("reuses existing contact by email", func(t *testing.T) {
		fx := newFixture(t)

		existing := &model.Contact{WorkspaceID: fx.workspace.ID, Name: "Dana", Email: "dana@example.com"}
		require.NoError(t, fx.contacts.Create(ctx, existing))

		booking, err := fx.svc.CreatePublicBooking(ctx, &model.PublicBookingRequest{
			WorkspaceID: fx.workspace.ID,
			Booking: model.CreateBookingRequest{
				ServiceTypeID: fx.serviceType.ID,
				ScheduledAt:   at(9, 0),
			},
			Contact: model.CreateContactRequest{
				Name:  "Dana",
				Email: "dana@example.com",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, existing.ID, booking.ContactID)
		assert.Len(t, fx.contacts.contacts, 1)
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts every status regardless of current one", func(t *testing.T) {
		fx := newFixture(t)

		booking, err := fx.svc.CreateBooking(ctx, fx.workspace.ID, uuid.New(), &model.CreateBookingRequest{
			ServiceTypeID: fx.serviceType.ID,
			ScheduledAt:   at(9, 0),
		})
		require.NoError(t, err)

		// No transition ordering: completed may be followed by pending.
		for _, status := range []model.BookingStatus{
			model.BookingStatusCompleted,
			model.BookingStatusPending,
			model.BookingStatusNoShow,
			model.BookingStatusConfirmed,
			model.BookingStatusCancelled,
		} {
			updated, err := fx.svc.UpdateBookingStatus(ctx, booking.ID, status)
			require.NoError(t, err, "status %s", status)
			assert.Equal(t, status, updated.Status)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		fx := newFixture(t)

		booking, err := fx.svc.CreateBooking(ctx, fx.workspace.ID, uuid.New(), &model.CreateBookingRequest{
			ServiceTypeID: fx.serviceType.ID,
			ScheduledAt:   at(9, 0),
		})
		require.NoError(t, err)

		_, err = fx.svc.UpdateBookingStatus(ctx, booking.ID, model.BookingStatus("rescheduled"))
		assert.True(t, apperr.Is(err, apperr.ErrInvalidStatus))
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.svc.UpdateBookingStatus(ctx, uuid.New(), model.BookingStatusConfirmed)
		assert.True(t, apperr.Is(err, apperr.ErrNotFound))
	})
}

func TestIntervalOverlapMode(t *testing.T) {
	ctx := context.Background()

	fx := newFixture(t, WithConflictPolicy(PolicyIntervalOverlap))
	fx.addWindow(t, 0, "09:00:00", "10:30:00")

	// A booking off the slot grid at 09:15 overlaps both 09:00 and 09:30
	// candidates under interval mode.
	err := fx.bookings.Create(ctx, &model.Booking{
		WorkspaceID:   fx.workspace.ID,
		ServiceTypeID: fx.serviceType.ID,
		ScheduledAt:   at(9, 15),
		Status:        model.BookingStatusConfirmed,
	})
	require.NoError(t, err)

	slots, err := fx.svc.ListAvailableSlots(ctx, fx.serviceType.ID, sunday)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{at(10, 0)}, slots)
}
