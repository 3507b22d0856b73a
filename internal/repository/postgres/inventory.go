package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/repository"
)

func (r *inventoryRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (
			id, workspace_id, name, description, quantity,
			low_stock_threshold, unit, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.WorkspaceID,
		item.Name,
		item.Description,
		item.Quantity,
		item.LowStockThreshold,
		item.Unit,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

func (r *inventoryRepository) Get(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	query := `
		SELECT id, workspace_id, name, description, quantity,
			   low_stock_threshold, unit, created_at, updated_at
		FROM inventory_items
		WHERE id = $1
	`
	var item model.InventoryItem
	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return &item, nil
}

func (r *inventoryRepository) List(ctx context.Context, workspaceID uuid.UUID) ([]*model.InventoryItem, error) {
	query := `
		SELECT id, workspace_id, name, description, quantity,
			   low_stock_threshold, unit, created_at, updated_at
		FROM inventory_items
		WHERE workspace_id = $1
		ORDER BY name ASC
	`
	var items []*model.InventoryItem
	err := r.db.SelectContext(ctx, &items, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}

// AdjustQuantity applies the delta atomically in the database. The floor at
// zero keeps concurrent decrements from driving quantity negative.
func (r *inventoryRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (*model.InventoryItem, error) {
	query := `
		UPDATE inventory_items
		SET quantity = GREATEST(quantity + $1, 0), updated_at = $2
		WHERE id = $3
		RETURNING id, workspace_id, name, description, quantity,
				  low_stock_threshold, unit, created_at, updated_at
	`
	var item model.InventoryItem
	err := r.db.GetContext(ctx, &item, query, delta, time.Now(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to adjust inventory quantity: %w", err)
	}
	return &item, nil
}

func (r *inventoryRepository) ExistsForWorkspace(ctx context.Context, workspaceID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM inventory_items WHERE workspace_id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, workspaceID)
	if err != nil {
		return false, fmt.Errorf("failed to check inventory items: %w", err)
	}
	return exists, nil
}

func (r *inventoryRepository) ListLowStock(ctx context.Context, workspaceID uuid.UUID) ([]*model.InventoryItem, error) {
	query := `
		SELECT id, workspace_id, name, description, quantity,
			   low_stock_threshold, unit, created_at, updated_at
		FROM inventory_items
		WHERE workspace_id = $1
		AND quantity <= low_stock_threshold
		ORDER BY name ASC
	`
	var items []*model.InventoryItem
	err := r.db.SelectContext(ctx, &items, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list low-stock items: %w", err)
	}
	return items, nil
}
