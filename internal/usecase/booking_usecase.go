package usecase

import (
	"context"
	"errors"
	"time"

	"hospital-scheduling/internal/converter"
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"
	"hospital-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// BookingUsecase is the mutation guard of the booking store. Every write
// goes through here: input validation, overlap checks against the slot grid,
// and optimistic concurrency via the booking version counter. No write lock
// is held between read and write; the client presents the version it last
// observed and loses cleanly if someone else committed first.
type BookingUsecase interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error)
	CreateBooking(ctx context.Context, kind entity.ScheduleKind, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, id uuid.UUID, version int) (*dto.BookingResponse, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error
}

type bookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	specs        map[entity.ScheduleKind]entity.GridSpec
	bookingRepo  repository.BookingRepository
	resourceRepo repository.ResourceRepository
	patientRepo  repository.PatientRepository
	matcher      *service.PatientMatcher
	notifier     *service.EventNotifier
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	specs map[entity.ScheduleKind]entity.GridSpec,
	bookingRepo repository.BookingRepository,
	resourceRepo repository.ResourceRepository,
	patientRepo repository.PatientRepository,
	matcher *service.PatientMatcher,
	notifier *service.EventNotifier,
) BookingUsecase {
	return &bookingUsecase{
		db:           db,
		log:          log,
		specs:        specs,
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		patientRepo:  patientRepo,
		matcher:      matcher,
		notifier:     notifier,
	}
}

func (u *bookingUsecase) GetBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return converter.BookingToResponse(booking), nil
}

// CreateBooking validates the requested interval against the slot grid and
// the existing bookings on the same resource and date, resolves the patient,
// and inserts the booking at version 1.
func (u *bookingUsecase) CreateBooking(ctx context.Context, kind entity.ScheduleKind, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	spec, ok := u.specs[kind]
	if !ok {
		return nil, ErrUnknownScheduleKind
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	startMinutes, err := u.validateInterval(spec, req.StartSlot, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	resource, err := u.lookupResource(ctx, spec, req.ResourceID, date)
	if err != nil {
		return nil, err
	}

	if err := u.checkOverlap(ctx, kind, resource.ID, date, startMinutes, startMinutes+req.DurationMinutes, uuid.Nil); err != nil {
		return nil, err
	}

	patientID, err := u.resolvePatient(ctx, req.PatientID, req.PatientNameRaw)
	if err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		ScheduleKind:    kind,
		ResourceID:      resource.ID,
		Date:            date,
		StartSlot:       req.StartSlot,
		DurationMinutes: req.DurationMinutes,
		PatientID:       patientID,
		PatientNameRaw:  req.PatientNameRaw,
		DoctorCode:      req.DoctorCode,
		TreatmentCodes:  req.TreatmentCodes,
		SessionMarker:   req.SessionMarker,
		PatientCategory: entity.PatientCategory(req.PatientCategory),
		Status:          entity.BookingStatusBooked,
		Notes:           req.Notes,
		Version:         1,
	}

	if err := u.bookingRepo.Create(u.db.WithContext(ctx), booking); err != nil {
		// A concurrent creator can slip in between the pre-check and the
		// insert; the store's no-overlap constraint rejects the loser.
		if errors.Is(err, repository.ErrBookingOverlap) {
			return nil, u.conflictFor(ctx, kind, resource.ID, date, startMinutes, startMinutes+req.DurationMinutes, uuid.Nil)
		}
		u.log.Errorf("Failed to create booking on %s %s %s: %+v", kind, req.Date, req.StartSlot, err)
		return nil, err
	}

	u.publishEvent(ctx, service.EventBookingCreated, booking)
	u.log.Infof("Booking created: id=%s kind=%s resource=%s date=%s start=%s", booking.ID, kind, resource.ID, req.Date, req.StartSlot)

	return converter.BookingToResponse(booking), nil
}

// UpdateBooking applies a partial patch under optimistic concurrency. Any
// change to the booked interval is re-validated against the grid and the
// other bookings on the target resource and date.
func (u *bookingUsecase) UpdateBooking(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	stored, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		return nil, err
	}
	if stored == nil {
		return nil, ErrBookingNotFound
	}
	if stored.Version != req.Version {
		u.log.Infof("Stale update on booking %s: client version=%d stored=%d", id, req.Version, stored.Version)
		return nil, ErrStaleVersion
	}

	spec := u.specs[stored.ScheduleKind]

	// Resolve the target interval after the patch.
	targetResourceID := stored.ResourceID
	if req.ResourceID != nil {
		targetResourceID = *req.ResourceID
	}
	targetDate := stored.Date
	if req.Date != nil {
		targetDate, err = time.Parse(dateLayout, *req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}
	targetStart := stored.StartSlot
	if req.StartSlot != nil {
		targetStart = *req.StartSlot
	}
	targetDuration := stored.DurationMinutes
	if req.DurationMinutes != nil {
		targetDuration = *req.DurationMinutes
	}

	intervalChanged := targetResourceID != stored.ResourceID ||
		!targetDate.Equal(stored.Date) ||
		targetStart != stored.StartSlot ||
		targetDuration != stored.DurationMinutes

	fields := map[string]interface{}{
		"version": stored.Version + 1,
	}

	targetStartMinutes := stored.StartMinutes()
	if intervalChanged {
		if stored.IsCancelled() {
			return nil, ErrBookingCancelled
		}
		startMinutes, err := u.validateInterval(spec, targetStart, targetDuration)
		if err != nil {
			return nil, err
		}
		targetStartMinutes = startMinutes
		if _, err := u.lookupResource(ctx, spec, targetResourceID, targetDate); err != nil {
			return nil, err
		}
		if err := u.checkOverlap(ctx, stored.ScheduleKind, targetResourceID, targetDate, startMinutes, startMinutes+targetDuration, stored.ID); err != nil {
			return nil, err
		}
		fields["resource_id"] = targetResourceID
		fields["date"] = targetDate
		fields["start_slot"] = targetStart
		fields["duration_minutes"] = targetDuration
	}

	if req.Status != nil {
		status := entity.BookingStatus(*req.Status)
		if !status.Valid() || status == entity.BookingStatusCancelled {
			return nil, ErrInvalidStatus
		}
		fields["status"] = status
	}
	if req.DoctorCode != nil {
		fields["doctor_code"] = *req.DoctorCode
	}
	if req.TreatmentCodes != nil {
		fields["treatment_codes"] = *req.TreatmentCodes
	}
	if req.SessionMarker != nil {
		fields["session_marker"] = *req.SessionMarker
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	rows, err := u.bookingRepo.UpdateVersioned(u.db.WithContext(ctx), id, req.Version, fields)
	if err != nil {
		if errors.Is(err, repository.ErrBookingOverlap) {
			return nil, u.conflictFor(ctx, stored.ScheduleKind, targetResourceID, targetDate, targetStartMinutes, targetStartMinutes+targetDuration, stored.ID)
		}
		u.log.Warnf("Failed to update booking %s: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		// Lost the race between our read and the conditional write.
		u.log.Infof("Stale update on booking %s at write time: client version=%d", id, req.Version)
		return nil, ErrStaleVersion
	}

	updated, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil || updated == nil {
		u.log.Warnf("Failed to reload booking %s after update: %+v", id, err)
		return nil, ErrBookingNotFound
	}

	u.publishEvent(ctx, service.EventBookingModified, updated)
	// When the booking moved, viewers of the old date need a refresh too.
	if intervalChanged && !targetDate.Equal(stored.Date) {
		u.publishEvent(ctx, service.EventBookingModified, stored)
	}
	u.log.Infof("Booking updated: id=%s version=%d", id, updated.Version)

	return converter.BookingToResponse(updated), nil
}

// CancelBooking sets the booking to cancelled under the same version check
// as updates. The row is retained for history; its interval no longer counts
// against overlap checks, so the slots become bookable again.
func (u *bookingUsecase) CancelBooking(ctx context.Context, id uuid.UUID, version int) (*dto.BookingResponse, error) {
	stored, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		return nil, err
	}
	if stored == nil {
		return nil, ErrBookingNotFound
	}
	if stored.IsCancelled() {
		return nil, ErrBookingCancelled
	}
	if stored.Version != version {
		return nil, ErrStaleVersion
	}

	fields := map[string]interface{}{
		"status":  entity.BookingStatusCancelled,
		"version": version + 1,
	}
	rows, err := u.bookingRepo.UpdateVersioned(u.db.WithContext(ctx), id, version, fields)
	if err != nil {
		u.log.Warnf("Failed to cancel booking %s: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrStaleVersion
	}

	stored.Status = entity.BookingStatusCancelled
	stored.Version = version + 1

	u.publishEvent(ctx, service.EventBookingCancelled, stored)
	u.log.Infof("Booking cancelled: id=%s version=%d", id, stored.Version)

	return converter.BookingToResponse(stored), nil
}

// DeleteBooking hard-removes an erroneous entry. No version check: deletion
// is an administrative correction and wins over concurrent edits.
func (u *bookingUsecase) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	stored, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		return err
	}
	if stored == nil {
		return ErrBookingNotFound
	}

	rows, err := u.bookingRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete booking %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrBookingNotFound
	}

	u.publishEvent(ctx, service.EventBookingCancelled, stored)
	u.log.Infof("Booking deleted: id=%s", id)
	return nil
}

// validateInterval checks the start slot and duration against the grid:
// on-grid start, positive slot-multiple duration, end before closing.
func (u *bookingUsecase) validateInterval(spec entity.GridSpec, startSlot string, durationMinutes int) (int, error) {
	startMinutes, err := entity.ParseSlot(startSlot)
	if err != nil {
		return 0, ErrOffGridStart
	}
	if !spec.AlignsToGrid(startMinutes) {
		return 0, ErrOffGridStart
	}
	if !spec.ValidDuration(durationMinutes) {
		return 0, ErrInvalidDuration
	}
	if startMinutes+durationMinutes > spec.CloseMinutes {
		return 0, ErrPastClosing
	}
	return startMinutes, nil
}

func (u *bookingUsecase) lookupResource(ctx context.Context, spec entity.GridSpec, resourceID uuid.UUID, date time.Time) (*entity.Resource, error) {
	resource, err := u.resourceRepo.FindByID(u.db.WithContext(ctx), resourceID)
	if err != nil {
		u.log.Warnf("Failed to find resource %s: %+v", resourceID, err)
		return nil, err
	}
	if resource == nil || resource.Kind != spec.ResourceKind {
		return nil, ErrResourceNotFound
	}
	if !resource.ActiveOn(date.Weekday()) {
		return nil, ErrResourceInactive
	}
	return resource, nil
}

// checkOverlap is the pre-check of the no-overlap invariant: the half-open
// intervals of non-cancelled bookings on one resource and date must be
// pairwise disjoint. It names the conflicting booking for the error payload;
// the store's exclusion constraint is what holds the invariant when two
// writers pass this check at the same time.
func (u *bookingUsecase) checkOverlap(ctx context.Context, kind entity.ScheduleKind, resourceID uuid.UUID, date time.Time, startMinutes, endMinutes int, excludeID uuid.UUID) error {
	existing, err := u.bookingRepo.FindForDay(u.db.WithContext(ctx), kind, resourceID, date)
	if err != nil {
		u.log.Warnf("Failed to load bookings for overlap check on %s/%s: %+v", resourceID, date.Format(dateLayout), err)
		return err
	}
	for i := range existing {
		if existing[i].ID == excludeID {
			continue
		}
		if existing[i].Overlaps(startMinutes, endMinutes) {
			u.log.Infof("Overlap rejected on resource %s %s: %s-%s conflicts with booking %s",
				resourceID, date.Format(dateLayout), entity.FormatSlot(startMinutes), entity.FormatSlot(endMinutes), existing[i].ID)
			return &OverlapError{ConflictingID: existing[i].ID}
		}
	}
	return nil
}

// conflictFor names the booking holding the contested interval after the
// store rejected a write. Best effort: the winner may already have moved
// again, in which case the conflict is reported without an id.
func (u *bookingUsecase) conflictFor(ctx context.Context, kind entity.ScheduleKind, resourceID uuid.UUID, date time.Time, startMinutes, endMinutes int, excludeID uuid.UUID) error {
	existing, err := u.bookingRepo.FindForDay(u.db.WithContext(ctx), kind, resourceID, date)
	if err == nil {
		for i := range existing {
			if existing[i].ID != excludeID && existing[i].Overlaps(startMinutes, endMinutes) {
				return &OverlapError{ConflictingID: existing[i].ID}
			}
		}
	}
	return &OverlapError{}
}

// resolvePatient returns the patient id for a new booking. An explicit id is
// verified; otherwise the matcher resolves the raw name, and no unique match
// leaves the booking unmatched (nil id) - a successful creation with an
// advisory flag, not an error.
func (u *bookingUsecase) resolvePatient(ctx context.Context, explicitID *uuid.UUID, rawName string) (*uuid.UUID, error) {
	if explicitID != nil {
		patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), *explicitID)
		if err != nil {
			u.log.Warnf("Failed to find patient %s: %+v", *explicitID, err)
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		return explicitID, nil
	}

	patient, err := u.matcher.Match(ctx, rawName)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, nil
	}
	return &patient.ID, nil
}

func (u *bookingUsecase) publishEvent(ctx context.Context, kind string, booking *entity.Booking) {
	u.notifier.Publish(ctx, service.BookingEvent{
		BookingID:    booking.ID,
		Kind:         kind,
		ScheduleKind: booking.ScheduleKind,
		Date:         booking.Date.Format(dateLayout),
		ResourceID:   booking.ResourceID,
	})
}
