package usecase

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// Validation errors - rejected before touching the store.
	ErrUnknownScheduleKind = errors.New("unknown schedule kind")
	ErrInvalidDate         = errors.New("invalid date format, use YYYY-MM-DD")
	ErrOffGridStart        = errors.New("start time is not on the slot grid")
	ErrInvalidDuration     = errors.New("duration must be a positive multiple of the slot size")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrResourceInactive    = errors.New("resource does not work on that day")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrInvalidStatus       = errors.New("invalid booking status")

	// ErrPastClosing rejects bookings that would extend past closing time.
	// Truncating silently would create a shorter booking than requested.
	ErrPastClosing = errors.New("booking would extend past closing time")

	// ErrStaleVersion means the booking changed since the client last read
	// it. The client must refetch and decide whether to retry.
	ErrStaleVersion = errors.New("booking was modified by someone else")

	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingCancelled = errors.New("booking is already cancelled")

	ErrRemarkNotFound = errors.New("remark not found")
	ErrRemarkExists   = errors.New("a remark already exists for that date")
)

// OverlapError reports a conflict with an existing non-cancelled booking,
// naming the conflicting booking so the UI can explain it.
type OverlapError struct {
	ConflictingID uuid.UUID
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("requested interval overlaps booking %s", e.ConflictingID)
}
