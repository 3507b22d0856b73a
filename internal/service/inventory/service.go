package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/repository"
	apperr "github.com/careops/careops-api/pkg/errors"
)

// Service tracks stock levels. Quantity adjustments clamp at zero in the
// store; crossing the low-stock threshold raises an alert and an outbox
// event.
type Service struct {
	inventory repository.InventoryRepository
	alerts    repository.AlertRepository
	outbox    repository.OutboxRepository
	logger    zerolog.Logger
}

func NewService(
	inventory repository.InventoryRepository,
	alerts repository.AlertRepository,
	outbox repository.OutboxRepository,
	logger zerolog.Logger,
) *Service {
	return &Service{
		inventory: inventory,
		alerts:    alerts,
		outbox:    outbox,
		logger:    logger,
	}
}

func (s *Service) Create(ctx context.Context, workspaceID uuid.UUID, req *model.CreateInventoryItemRequest) (*model.InventoryItem, error) {
	item := &model.InventoryItem{
		WorkspaceID:       workspaceID,
		Name:              req.Name,
		Description:       req.Description,
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
		Unit:              req.Unit,
	}
	if err := s.inventory.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, workspaceID uuid.UUID) ([]*model.InventoryItem, error) {
	items, err := s.inventory.List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// Adjust applies a signed delta to an item's quantity. When the adjusted
// item sits at or below its threshold, a warning alert is raised and a
// low-stock event is queued.
func (s *Service) Adjust(ctx context.Context, id uuid.UUID, delta int) (*model.InventoryItem, error) {
	before, err := s.inventory.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("inventory item", err)
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	item, err := s.inventory.AdjustQuantity(ctx, id, delta)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("inventory item", err)
		}
		return nil, fmt.Errorf("failed to adjust inventory: %w", err)
	}

	// Alert only on the transition into low stock, not on every
	// adjustment while already low.
	if item.LowStock() && !before.LowStock() {
		s.raiseLowStockAlert(ctx, item)
	}

	return item, nil
}

// ListLowStock returns items at or below their threshold.
func (s *Service) ListLowStock(ctx context.Context, workspaceID uuid.UUID) ([]*model.InventoryItem, error) {
	items, err := s.inventory.ListLowStock(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list low-stock items: %w", err)
	}
	return items, nil
}

func (s *Service) raiseLowStockAlert(ctx context.Context, item *model.InventoryItem) {
	alert := &model.Alert{
		WorkspaceID: item.WorkspaceID,
		Type:        "inventory_low_stock",
		Severity:    model.AlertSeverityWarning,
		Title:       "Low stock",
		Message:     fmt.Sprintf("%s is down to %d %s", item.Name, item.Quantity, item.Unit),
		LinkTo:      "/inventory/" + item.ID.String(),
	}
	if err := s.alerts.Create(ctx, alert); err != nil {
		s.logger.Error().Err(err).
			Str("item_id", item.ID.String()).
			Msg("failed to create low-stock alert")
	}

	if s.outbox == nil {
		return
	}
	payload, err := json.Marshal(item)
	if err != nil {
		return
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{
		WorkspaceID: item.WorkspaceID,
		EventType:   model.EventInventoryLowStock,
		Payload:     payload,
	}); err != nil {
		s.logger.Error().Err(err).
			Str("item_id", item.ID.String()).
			Msg("failed to queue low-stock event")
	}
}
