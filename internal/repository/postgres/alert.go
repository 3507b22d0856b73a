package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/repository"
)

func (r *alertRepository) Create(ctx context.Context, alert *model.Alert) error {
	query := `
		INSERT INTO alerts (
			id, workspace_id, type, severity, title, message, link_to,
			is_read, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	alert.ID = uuid.New()
	alert.CreatedAt = time.Now()
	alert.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		alert.ID,
		alert.WorkspaceID,
		alert.Type,
		alert.Severity,
		alert.Title,
		alert.Message,
		alert.LinkTo,
		alert.IsRead,
		alert.CreatedAt,
		alert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (r *alertRepository) List(ctx context.Context, workspaceID uuid.UUID) ([]*model.Alert, error) {
	query := `
		SELECT id, workspace_id, type, severity, title, message, link_to,
			   is_read, created_at, updated_at
		FROM alerts
		WHERE workspace_id = $1
		ORDER BY created_at DESC
	`
	var alerts []*model.Alert
	err := r.db.SelectContext(ctx, &alerts, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

func (r *alertRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE alerts
		SET is_read = true, updated_at = $1
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark alert read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}
