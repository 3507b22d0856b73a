package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/repository"
)

// uniqueViolation is the postgres error code raised by the partial unique
// index on (workspace_id, service_type_id, scheduled_at) WHERE status <>
// 'cancelled'. The index is the double-booking guard; concurrent inserts for
// the same slot race at the constraint, not in application code.
const uniqueViolation = "23505"

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, workspace_id, contact_id, service_type_id,
			scheduled_at, status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.WorkspaceID,
		booking.ContactID,
		booking.ServiceTypeID,
		booking.ScheduledAt,
		booking.Status,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return repository.ErrDuplicateBooking
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT id, workspace_id, contact_id, service_type_id,
			   scheduled_at, status, notes, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	query := `
		SELECT id, workspace_id, contact_id, service_type_id,
			   scheduled_at, status, notes, created_at, updated_at
		FROM bookings
		WHERE workspace_id = $1
	`
	args := []interface{}{filters.WorkspaceID}
	argCount := 2

	if filters.ServiceTypeID != uuid.Nil {
		query += fmt.Sprintf(" AND service_type_id = $%d", argCount)
		args = append(args, filters.ServiceTypeID)
		argCount++
	}

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	if !filters.FromDate.IsZero() {
		query += fmt.Sprintf(" AND scheduled_at >= $%d", argCount)
		args = append(args, filters.FromDate)
		argCount++
	}

	if !filters.ToDate.IsZero() {
		query += fmt.Sprintf(" AND scheduled_at <= $%d", argCount)
		args = append(args, filters.ToDate)
		argCount++
	}

	query += " ORDER BY scheduled_at ASC"

	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, workspace_id, contact_id, service_type_id,
				  scheduled_at, status, notes, created_at, updated_at
	`
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, status, time.Now(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) ListForServiceDate(ctx context.Context, serviceTypeID uuid.UUID, dayStart, dayEnd time.Time) ([]*model.Booking, error) {
	query := `
		SELECT id, workspace_id, contact_id, service_type_id,
			   scheduled_at, status, notes, created_at, updated_at
		FROM bookings
		WHERE service_type_id = $1
		AND scheduled_at >= $2
		AND scheduled_at < $3
		ORDER BY scheduled_at ASC
	`
	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query, serviceTypeID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for date: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) CountInRange(ctx context.Context, workspaceID uuid.UUID, from, to time.Time, status model.BookingStatus) (int, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE workspace_id = $1
		AND scheduled_at >= $2
		AND scheduled_at < $3
	`
	args := []interface{}{workspaceID, from, to}
	if status != "" {
		query += " AND status = $4"
		args = append(args, status)
	}

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}
