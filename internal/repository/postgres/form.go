package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careops/careops-api/internal/model"
)

func (r *formTemplateRepository) Create(ctx context.Context, form *model.FormTemplate) error {
	query := `
		INSERT INTO form_templates (
			id, workspace_id, service_type_id, name, description,
			fields, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	form.ID = uuid.New()
	form.CreatedAt = time.Now()
	form.UpdatedAt = time.Now()
	if form.Fields == nil {
		form.Fields = model.JSONMap{}
	}

	_, err := r.db.ExecContext(ctx, query,
		form.ID,
		form.WorkspaceID,
		form.ServiceTypeID,
		form.Name,
		form.Description,
		form.Fields,
		form.IsActive,
		form.CreatedAt,
		form.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create form template: %w", err)
	}
	return nil
}

func (r *formTemplateRepository) List(ctx context.Context, workspaceID uuid.UUID) ([]*model.FormTemplate, error) {
	query := `
		SELECT id, workspace_id, service_type_id, name, description,
			   fields, is_active, created_at, updated_at
		FROM form_templates
		WHERE workspace_id = $1
		ORDER BY created_at ASC
	`
	var forms []*model.FormTemplate
	err := r.db.SelectContext(ctx, &forms, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list form templates: %w", err)
	}
	return forms, nil
}

// Contact forms carry no service type; post-booking forms are linked to one.
func (r *formTemplateRepository) ContactFormExists(ctx context.Context, workspaceID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM form_templates
			WHERE workspace_id = $1 AND service_type_id IS NULL
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, workspaceID)
	if err != nil {
		return false, fmt.Errorf("failed to check contact forms: %w", err)
	}
	return exists, nil
}

func (r *formTemplateRepository) PostBookingFormExists(ctx context.Context, workspaceID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM form_templates
			WHERE workspace_id = $1 AND service_type_id IS NOT NULL
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, workspaceID)
	if err != nil {
		return false, fmt.Errorf("failed to check post-booking forms: %w", err)
	}
	return exists, nil
}
