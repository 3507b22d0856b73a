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

func (r *serviceTypeRepository) Create(ctx context.Context, st *model.ServiceType) error {
	query := `
		INSERT INTO service_types (
			id, workspace_id, name, description, duration_minutes,
			location, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	st.ID = uuid.New()
	st.CreatedAt = time.Now()
	st.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		st.ID,
		st.WorkspaceID,
		st.Name,
		st.Description,
		st.DurationMinutes,
		st.Location,
		st.IsActive,
		st.CreatedAt,
		st.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service type: %w", err)
	}
	return nil
}

func (r *serviceTypeRepository) Get(ctx context.Context, id uuid.UUID) (*model.ServiceType, error) {
	query := `
		SELECT id, workspace_id, name, description, duration_minutes,
			   location, is_active, created_at, updated_at
		FROM service_types
		WHERE id = $1
	`
	var st model.ServiceType
	err := r.db.GetContext(ctx, &st, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service type: %w", err)
	}
	return &st, nil
}

func (r *serviceTypeRepository) List(ctx context.Context, workspaceID uuid.UUID) ([]*model.ServiceType, error) {
	query := `
		SELECT id, workspace_id, name, description, duration_minutes,
			   location, is_active, created_at, updated_at
		FROM service_types
		WHERE workspace_id = $1
		ORDER BY created_at ASC
	`
	var types []*model.ServiceType
	err := r.db.SelectContext(ctx, &types, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list service types: %w", err)
	}
	return types, nil
}

func (r *serviceTypeRepository) ExistsForWorkspace(ctx context.Context, workspaceID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM service_types WHERE workspace_id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, workspaceID)
	if err != nil {
		return false, fmt.Errorf("failed to check service types: %w", err)
	}
	return exists, nil
}

func (r *serviceTypeRepository) CreateAvailabilitySlot(ctx context.Context, slot *model.AvailabilitySlot) error {
	query := `
		INSERT INTO availability_slots (
			id, service_type_id, day_of_week, start_time, end_time,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	slot.ID = uuid.New()
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		slot.ID,
		slot.ServiceTypeID,
		slot.DayOfWeek,
		slot.StartTime,
		slot.EndTime,
		slot.CreatedAt,
		slot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create availability slot: %w", err)
	}
	return nil
}

func (r *serviceTypeRepository) ListAvailabilitySlots(ctx context.Context, serviceTypeID uuid.UUID) ([]*model.AvailabilitySlot, error) {
	query := `
		SELECT id, service_type_id, day_of_week, start_time, end_time,
			   created_at, updated_at
		FROM availability_slots
		WHERE service_type_id = $1
		ORDER BY day_of_week ASC, start_time ASC
	`
	var slots []*model.AvailabilitySlot
	err := r.db.SelectContext(ctx, &slots, query, serviceTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability slots: %w", err)
	}
	return slots, nil
}

func (r *serviceTypeRepository) ListAvailabilitySlotsForDay(ctx context.Context, serviceTypeID uuid.UUID, dayOfWeek int) ([]*model.AvailabilitySlot, error) {
	query := `
		SELECT id, service_type_id, day_of_week, start_time, end_time,
			   created_at, updated_at
		FROM availability_slots
		WHERE service_type_id = $1
		AND day_of_week = $2
		ORDER BY start_time ASC
	`
	var slots []*model.AvailabilitySlot
	err := r.db.SelectContext(ctx, &slots, query, serviceTypeID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability slots for day: %w", err)
	}
	return slots, nil
}

func (r *serviceTypeRepository) SlotsExistForWorkspace(ctx context.Context, workspaceID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM availability_slots s
			JOIN service_types t ON t.id = s.service_type_id
			WHERE t.workspace_id = $1
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, workspaceID)
	if err != nil {
		return false, fmt.Errorf("failed to check availability slots: %w", err)
	}
	return exists, nil
}
