package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBookingRequest struct {
	ResourceID      uuid.UUID  `json:"resource_id" validate:"required"`
	Date            string     `json:"date" validate:"required"`
	StartSlot       string     `json:"start_slot" validate:"required"`
	DurationMinutes int        `json:"duration_minutes" validate:"required,min=1"`
	PatientID       *uuid.UUID `json:"patient_id,omitempty"`
	PatientNameRaw  string     `json:"patient_name_raw" validate:"required_without=PatientID,max=100"`
	DoctorCode      string     `json:"doctor_code,omitempty" validate:"max=20"`
	TreatmentCodes  string     `json:"treatment_codes,omitempty" validate:"max=100"`
	SessionMarker   string     `json:"session_marker,omitempty" validate:"max=20"`
	PatientCategory string     `json:"patient_category" validate:"required,oneof=inpatient outpatient"`
	Notes           string     `json:"notes,omitempty"`
}

// UpdateBookingRequest is a partial patch; nil fields stay unchanged.
// Version must name the revision the client last observed.
type UpdateBookingRequest struct {
	Version         int        `json:"version" validate:"required,min=1"`
	ResourceID      *uuid.UUID `json:"resource_id,omitempty"`
	Date            *string    `json:"date,omitempty"`
	StartSlot       *string    `json:"start_slot,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty" validate:"omitempty,min=1"`
	Status          *string    `json:"status,omitempty" validate:"omitempty,oneof=booked completed no_show"`
	DoctorCode      *string    `json:"doctor_code,omitempty"`
	TreatmentCodes  *string    `json:"treatment_codes,omitempty"`
	SessionMarker   *string    `json:"session_marker,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

type CancelBookingRequest struct {
	Version int `json:"version" validate:"required,min=1"`
}

// Response DTOs

type BookingResponse struct {
	ID              uuid.UUID  `json:"id"`
	ScheduleKind    string     `json:"schedule_kind"`
	ResourceID      uuid.UUID  `json:"resource_id"`
	Date            string     `json:"date"`
	StartSlot       string     `json:"start_slot"`
	DurationMinutes int        `json:"duration_minutes"`
	PatientID       *uuid.UUID `json:"patient_id,omitempty"`
	PatientNameRaw  string     `json:"patient_name_raw"`
	Unmatched       bool       `json:"unmatched"`
	DoctorCode      string     `json:"doctor_code,omitempty"`
	TreatmentCodes  string     `json:"treatment_codes,omitempty"`
	SessionMarker   string     `json:"session_marker,omitempty"`
	PatientCategory string     `json:"patient_category"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	Version         int        `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
