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

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	query := `
		INSERT INTO contacts (
			id, workspace_id, name, email, phone, metadata,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	contact.ID = uuid.New()
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = time.Now()
	if contact.Metadata == nil {
		contact.Metadata = model.JSONMap{}
	}

	_, err := r.db.ExecContext(ctx, query,
		contact.ID,
		contact.WorkspaceID,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Metadata,
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

func (r *contactRepository) Get(ctx context.Context, id uuid.UUID) (*model.Contact, error) {
	query := `
		SELECT id, workspace_id, name, email, phone, metadata,
			   created_at, updated_at
		FROM contacts
		WHERE id = $1
	`
	var contact model.Contact
	err := r.db.GetContext(ctx, &contact, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &contact, nil
}

func (r *contactRepository) GetByEmail(ctx context.Context, workspaceID uuid.UUID, email string) (*model.Contact, error) {
	query := `
		SELECT id, workspace_id, name, email, phone, metadata,
			   created_at, updated_at
		FROM contacts
		WHERE workspace_id = $1 AND email = $2
	`
	var contact model.Contact
	err := r.db.GetContext(ctx, &contact, query, workspaceID, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact by email: %w", err)
	}
	return &contact, nil
}

func (r *contactRepository) List(ctx context.Context, workspaceID uuid.UUID) ([]*model.Contact, error) {
	query := `
		SELECT id, workspace_id, name, email, phone, metadata,
			   created_at, updated_at
		FROM contacts
		WHERE workspace_id = $1
		ORDER BY created_at DESC
	`
	var contacts []*model.Contact
	err := r.db.SelectContext(ctx, &contacts, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}
