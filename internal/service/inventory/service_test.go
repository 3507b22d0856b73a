package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/repository"
	apperr "github.com/careops/careops-api/pkg/errors"
)

type fakeInventoryRepo struct {
	items map[uuid.UUID]*model.InventoryItem
}

func (f *fakeInventoryRepo) Create(_ context.Context, item *model.InventoryItem) error {
	item.ID = uuid.New()
	f.items[item.ID] = item
	return nil
}

func (f *fakeInventoryRepo) Get(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeInventoryRepo) List(_ context.Context, workspaceID uuid.UUID) ([]*model.InventoryItem, error) {
	var out []*model.InventoryItem
	for _, item := range f.items {
		if item.WorkspaceID == workspaceID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) AdjustQuantity(_ context.Context, id uuid.UUID, delta int) (*model.InventoryItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	item.Quantity += delta
	if item.Quantity < 0 {
		item.Quantity = 0
	}
	return item, nil
}

func (f *fakeInventoryRepo) ExistsForWorkspace(_ context.Context, workspaceID uuid.UUID) (bool, error) {
	for _, item := range f.items {
		if item.WorkspaceID == workspaceID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInventoryRepo) ListLowStock(_ context.Context, workspaceID uuid.UUID) ([]*model.InventoryItem, error) {
	var out []*model.InventoryItem
	for _, item := range f.items {
		if item.WorkspaceID == workspaceID && item.LowStock() {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeAlertRepo struct {
	alerts []*model.Alert
}

func (f *fakeAlertRepo) Create(_ context.Context, a *model.Alert) error {
	a.ID = uuid.New()
	f.alerts = append(f.alerts, a)
	return nil
}

func (f *fakeAlertRepo) List(_ context.Context, workspaceID uuid.UUID) ([]*model.Alert, error) {
	var out []*model.Alert
	for _, a := range f.alerts {
		if a.WorkspaceID == workspaceID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAlertRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	for _, a := range f.alerts {
		if a.ID == id {
			a.IsRead = true
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (f *fakeOutboxRepo) Create(_ context.Context, e *model.OutboxEvent) error {
	e.ID = uuid.New()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeOutboxRepo) GetPendingEventsWithLock(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	if len(f.events) > limit {
		return f.events[:limit], nil
	}
	return f.events, nil
}

func (f *fakeOutboxRepo) MarkPublished(_ context.Context, _ uuid.UUID) error { return nil }
func (f *fakeOutboxRepo) MarkFailed(_ context.Context, _ uuid.UUID) error   { return nil }

func newService() (*Service, *fakeInventoryRepo, *fakeAlertRepo, *fakeOutboxRepo) {
	inv := &fakeInventoryRepo{items: make(map[uuid.UUID]*model.InventoryItem)}
	alerts := &fakeAlertRepo{}
	outbox := &fakeOutboxRepo{}
	return NewService(inv, alerts, outbox, zerolog.Nop()), inv, alerts, outbox
}

func TestAdjust(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()

	t.Run("crossing the threshold raises alert and event", func(t *testing.T) {
		svc, _, alerts, outbox := newService()

		item, err := svc.Create(ctx, workspaceID, &model.CreateInventoryItemRequest{
			Name: "Gloves", Quantity: 5, LowStockThreshold: 2, Unit: "boxes",
		})
		require.NoError(t, err)

		adjusted, err := svc.Adjust(ctx, item.ID, -3)
		require.NoError(t, err)
		assert.Equal(t, 2, adjusted.Quantity)

		require.Len(t, alerts.alerts, 1)
		assert.Equal(t, model.AlertSeverityWarning, alerts.alerts[0].Severity)
		require.Len(t, outbox.events, 1)
		assert.Equal(t, model.EventInventoryLowStock, outbox.events[0].EventType)
	})

	t.Run("adjusting while already low does not repeat the alert", func(t *testing.T) {
		svc, _, alerts, _ := newService()

		item, err := svc.Create(ctx, workspaceID, &model.CreateInventoryItemRequest{
			Name: "Gloves", Quantity: 2, LowStockThreshold: 2,
		})
		require.NoError(t, err)

		_, err = svc.Adjust(ctx, item.ID, -1)
		require.NoError(t, err)
		assert.Empty(t, alerts.alerts)
	})

	t.Run("quantity clamps at zero", func(t *testing.T) {
		svc, _, _, _ := newService()

		item, err := svc.Create(ctx, workspaceID, &model.CreateInventoryItemRequest{
			Name: "Towels", Quantity: 3, LowStockThreshold: 0,
		})
		require.NoError(t, err)

		adjusted, err := svc.Adjust(ctx, item.ID, -10)
		require.NoError(t, err)
		assert.Equal(t, 0, adjusted.Quantity)
	})

	t.Run("unknown item is not found", func(t *testing.T) {
		svc, _, _, _ := newService()

		_, err := svc.Adjust(ctx, uuid.New(), 1)
		assert.True(t, apperr.Is(err, apperr.ErrNotFound))
	})
}

func TestListLowStock(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	svc, _, _, _ := newService()

	_, err := svc.Create(ctx, workspaceID, &model.CreateInventoryItemRequest{
		Name: "Gloves", Quantity: 1, LowStockThreshold: 2,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, workspaceID, &model.CreateInventoryItemRequest{
		Name: "Towels", Quantity: 10, LowStockThreshold: 2,
	})
	require.NoError(t, err)

	low, err := svc.ListLowStock(ctx, workspaceID)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Gloves", low[0].Name)
}
