package repository

import (
	"errors"
	"time"

	"hospital-scheduling/internal/domain/entity"
	domainRepo "hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error code for exclusion constraint violations.
const exclusionViolationCode = "23P01"

// translateOverlap maps a violation of the bookings_no_overlap exclusion
// constraint to the domain error. The constraint is what keeps intervals
// disjoint under concurrent writers; the usecase pre-check only exists to
// name the conflicting booking in the error payload.
func translateOverlap(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == exclusionViolationCode {
		return domainRepo.ErrBookingOverlap
	}
	return err
}

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return translateOverlap(db.Create(booking).Error)
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Preload("Resource").Preload("Patient").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindForDay(db *gorm.DB, kind entity.ScheduleKind, resourceID uuid.UUID, date time.Time) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.
		Where("schedule_kind = ? AND resource_id = ? AND date = ?", kind, resourceID, date).
		Order("start_slot").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindForRange(db *gorm.DB, kind entity.ScheduleKind, from, to time.Time) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("Patient").
		Where("schedule_kind = ? AND date BETWEEN ? AND ?", kind, from, to).
		Order("resource_id, date, start_slot").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateVersioned is the optimistic-concurrency write path. The version
// predicate makes the update atomic: a concurrent writer that already bumped
// the version leaves this statement with zero affected rows.
func (r *bookingRepository) UpdateVersioned(db *gorm.DB, id uuid.UUID, expectedVersion int, fields map[string]interface{}) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(fields)
	return result.RowsAffected, translateOverlap(result.Error)
}

func (r *bookingRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Booking{})
	return result.RowsAffected, result.Error
}
