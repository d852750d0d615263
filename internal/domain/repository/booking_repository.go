package repository

import (
	"errors"
	"time"

	"hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrBookingOverlap is returned by writes the store rejected under its
// no-overlap constraint: non-cancelled bookings on one resource and date
// must hold pairwise disjoint intervals, even under concurrent writers.
var ErrBookingOverlap = errors.New("booking overlaps an existing booking")

type BookingRepository interface {
	// Create inserts the booking; a write that would intersect an existing
	// non-cancelled booking on the same resource and date fails with
	// ErrBookingOverlap.
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	// FindForDay returns all bookings (any status) for one resource on one
	// date, ordered by start slot.
	FindForDay(db *gorm.DB, kind entity.ScheduleKind, resourceID uuid.UUID, date time.Time) ([]entity.Booking, error)
	// FindForRange returns all bookings for a schedule kind between two
	// dates inclusive, ordered by resource, date, start slot.
	FindForRange(db *gorm.DB, kind entity.ScheduleKind, from, to time.Time) ([]entity.Booking, error)
	// UpdateVersioned applies the field map only if the stored version still
	// matches expectedVersion. Returns affected rows: 0 means the caller
	// lost an optimistic-concurrency race (or the row is gone). An interval
	// change that would intersect another non-cancelled booking fails with
	// ErrBookingOverlap.
	UpdateVersioned(db *gorm.DB, id uuid.UUID, expectedVersion int, fields map[string]interface{}) (int64, error)
	// Delete hard-removes a booking, used for erroneous entries.
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
