package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusBooked, BookingStatusCompleted, BookingStatusNoShow, BookingStatusCancelled:
		return true
	}
	return false
}

// PatientCategory marks whether the booked patient is admitted or visiting.
type PatientCategory string

const (
	PatientCategoryInpatient  PatientCategory = "inpatient"
	PatientCategoryOutpatient PatientCategory = "outpatient"
)

func (c PatientCategory) Valid() bool {
	return c == PatientCategoryInpatient || c == PatientCategoryOutpatient
}

// Booking is one row in the canonical booking store. Day, week and month
// views are all projected from these rows; a booking is never duplicated
// across resolutions.
//
// Version implements optimistic locking: it starts at 1 and every successful
// mutation increments it by exactly 1. A write naming a stale version is
// rejected, never merged.
type Booking struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ScheduleKind    ScheduleKind    `gorm:"type:varchar(20);not null;index:idx_bookings_day" json:"schedule_kind"`
	ResourceID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_bookings_day" json:"resource_id"`
	Date            time.Time       `gorm:"type:date;not null;index:idx_bookings_day" json:"date"`
	StartSlot       string          `gorm:"type:varchar(5);not null" json:"start_slot"`
	DurationMinutes int             `gorm:"not null" json:"duration_minutes"`
	PatientID       *uuid.UUID      `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	PatientNameRaw  string          `gorm:"type:varchar(100);not null" json:"patient_name_raw"`
	DoctorCode      string          `gorm:"type:varchar(20)" json:"doctor_code,omitempty"`
	TreatmentCodes  string          `gorm:"type:varchar(100)" json:"treatment_codes,omitempty"`
	SessionMarker   string          `gorm:"type:varchar(20)" json:"session_marker,omitempty"`
	PatientCategory PatientCategory `gorm:"type:varchar(20);not null" json:"patient_category"`
	Status          BookingStatus   `gorm:"type:varchar(20);not null;default:'booked';index" json:"status"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	Version         int             `gorm:"not null;default:1" json:"version"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Resource Resource `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
	Patient  *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// StartMinutes returns the booking start as minutes since midnight.
// StartSlot is validated on write, so a malformed value maps to 0.
func (b *Booking) StartMinutes() int {
	m, err := ParseSlot(b.StartSlot)
	if err != nil {
		return 0
	}
	return m
}

// EndMinutes returns the exclusive end of the booked interval.
func (b *Booking) EndMinutes() int {
	return b.StartMinutes() + b.DurationMinutes
}

// Overlaps reports whether the half-open interval [start, end) intersects
// this booking's interval. Cancelled bookings never overlap anything.
func (b *Booking) Overlaps(startMinutes, endMinutes int) bool {
	if b.IsCancelled() {
		return false
	}
	return startMinutes < b.EndMinutes() && b.StartMinutes() < endMinutes
}

func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// IsMatched reports whether the patient name was resolved to a known
// patient record. Unmatched bookings stay fully functional; the flag is
// advisory.
func (b *Booking) IsMatched() bool {
	return b.PatientID != nil
}
