package repository

import (
	"testing"

	"hospital-scheduling/internal/domain/entity"
	domainRepo "hospital-scheduling/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestUpdateVersionedAppliesOnVersionMatch(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewBookingRepository()

	id := uuid.New()
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.UpdateVersioned(db, id, 1, map[string]interface{}{
		"status":  entity.BookingStatusCancelled,
		"version": 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateVersionedZeroRowsOnStaleVersion(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewBookingRepository()

	// The stored row already moved past the expected version; the
	// conditional UPDATE matches nothing.
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := repo.UpdateVersioned(db, uuid.New(), 1, map[string]interface{}{"version": 2})
	require.NoError(t, err)
	assert.Zero(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateVersionedMapsExclusionViolationToOverlap(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewBookingRepository()

	// An interval change collides with another row; Postgres rejects the
	// write through the bookings_no_overlap exclusion constraint.
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnError(&pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"})

	rows, err := repo.UpdateVersioned(db, uuid.New(), 1, map[string]interface{}{
		"start_slot": "09:30",
		"version":    2,
	})
	assert.ErrorIs(t, err, domainRepo.ErrBookingOverlap)
	assert.Zero(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNotFoundReturnsNil(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewBookingRepository()

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	booking, err := repo.FindByID(db, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, booking)
}

func TestDeleteReportsAffectedRows(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewBookingRepository()

	mock.ExpectExec(`DELETE FROM "bookings"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.Delete(db, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
