package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a known patient record, fed by the EMR import pipeline.
// Bookings reference it when the patient matcher found a unique match.
type Patient struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EMRPatientID string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"emr_patient_id"`
	Name         string          `gorm:"type:varchar(100);not null;index" json:"name"`
	DateOfBirth  time.Time       `gorm:"type:date" json:"date_of_birth"`
	Sex          string          `gorm:"type:char(1)" json:"sex"`
	Phone        string          `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Category     PatientCategory `gorm:"type:varchar(20);not null" json:"category"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// Sex constants
const (
	SexMale   = "M"
	SexFemale = "F"
)
