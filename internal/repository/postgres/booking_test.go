package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/repository"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestBookingRepositoryCreate(t *testing.T) {
	ctx := context.Background()

	booking := &model.Booking{
		WorkspaceID:   uuid.New(),
		ServiceTypeID: uuid.New(),
		ContactID:     uuid.New(),
		ScheduledAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Status:        model.BookingStatusPending,
	}

	t.Run("insert succeeds", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)

		mock.ExpectExec("INSERT INTO bookings").
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(ctx, booking)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, booking.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to duplicate booking", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)

		mock.ExpectExec("INSERT INTO bookings").
			WillReturnError(&pq.Error{Code: uniqueViolation, Constraint: "idx_bookings_slot_unique"})

		err := repo.Create(ctx, booking)
		assert.ErrorIs(t, err, repository.ErrDuplicateBooking)
	})

	t.Run("other errors pass through wrapped", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)

		mock.ExpectExec("INSERT INTO bookings").
			WillReturnError(sql.ErrConnDone)

		err := repo.Create(ctx, booking)
		require.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrDuplicateBooking)
	})
}

func TestBookingRepositoryGet(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row maps to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestBookingRepositoryUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row maps to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)

		mock.ExpectQuery("UPDATE bookings").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateStatus(ctx, uuid.New(), model.BookingStatusConfirmed)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
