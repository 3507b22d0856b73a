package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careops/careops-api/internal/model"
)

func (r *integrationRepository) Create(ctx context.Context, integration *model.Integration) error {
	query := `
		INSERT INTO integrations (
			id, workspace_id, type, provider, config, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	integration.ID = uuid.New()
	integration.CreatedAt = time.Now()
	integration.UpdatedAt = time.Now()
	if integration.Config == nil {
		integration.Config = model.JSONMap{}
	}

	_, err := r.db.ExecContext(ctx, query,
		integration.ID,
		integration.WorkspaceID,
		integration.Type,
		integration.Provider,
		integration.Config,
		integration.IsActive,
		integration.CreatedAt,
		integration.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create integration: %w", err)
	}
	return nil
}

func (r *integrationRepository) List(ctx context.Context, workspaceID uuid.UUID) ([]*model.Integration, error) {
	query := `
		SELECT id, workspace_id, type, provider, config, is_active,
			   created_at, updated_at
		FROM integrations
		WHERE workspace_id = $1
		ORDER BY created_at ASC
	`
	var integrations []*model.Integration
	err := r.db.SelectContext(ctx, &integrations, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list integrations: %w", err)
	}
	return integrations, nil
}

func (r *integrationRepository) ExistsForWorkspace(ctx context.Context, workspaceID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM integrations WHERE workspace_id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, workspaceID)
	if err != nil {
		return false, fmt.Errorf("failed to check integrations: %w", err)
	}
	return exists, nil
}
