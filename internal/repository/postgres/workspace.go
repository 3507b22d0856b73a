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

func (r *workspaceRepository) Create(ctx context.Context, ws *model.Workspace) error {
	query := `
		INSERT INTO workspaces (
			id, name, address, timezone, contact_email, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	ws.ID = uuid.New()
	ws.CreatedAt = time.Now()
	ws.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		ws.ID,
		ws.Name,
		ws.Address,
		ws.Timezone,
		ws.ContactEmail,
		ws.IsActive,
		ws.CreatedAt,
		ws.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	return nil
}

func (r *workspaceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Workspace, error) {
	query := `
		SELECT id, name, address, timezone, contact_email, is_active,
			   created_at, updated_at
		FROM workspaces
		WHERE id = $1
	`
	var ws model.Workspace
	err := r.db.GetContext(ctx, &ws, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return &ws, nil
}

func (r *workspaceRepository) Update(ctx context.Context, ws *model.Workspace) error {
	query := `
		UPDATE workspaces
		SET name = $1, address = $2, timezone = $3, contact_email = $4, updated_at = $5
		WHERE id = $6
	`
	ws.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		ws.Name,
		ws.Address,
		ws.Timezone,
		ws.ContactEmail,
		ws.UpdatedAt,
		ws.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update workspace: %w", err)
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

func (r *workspaceRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `
		UPDATE workspaces
		SET is_active = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, active, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set workspace active: %w", err)
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
