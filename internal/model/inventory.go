package model

import (
	"github.com/google/uuid"
)

type InventoryItem struct {
	Base
	WorkspaceID       uuid.UUID `db:"workspace_id" json:"workspace_id"`
	Name              string    `db:"name" json:"name"`
	Description       string    `db:"description" json:"description,omitempty"`
	Quantity          int       `db:"quantity" json:"quantity"`
	LowStockThreshold int       `db:"low_stock_threshold" json:"low_stock_threshold"`
	Unit              string    `db:"unit" json:"unit,omitempty"`
}

// LowStock reports whether the item has fallen to or below its threshold.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

type CreateInventoryItemRequest struct {
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	Quantity          int    `json:"quantity" binding:"min=0"`
	LowStockThreshold int    `json:"low_stock_threshold" binding:"min=0"`
	Unit              string `json:"unit"`
}

type AdjustInventoryRequest struct {
	Delta int `json:"delta" binding:"required"`
}
