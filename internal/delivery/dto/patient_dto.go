package dto

import (
	"github.com/google/uuid"
)

type PatientResponse struct {
	ID           uuid.UUID `json:"id"`
	EMRPatientID string    `json:"emr_patient_id"`
	Name         string    `json:"name"`
	DateOfBirth  string    `json:"date_of_birth,omitempty"`
	Sex          string    `json:"sex,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Category     string    `json:"category"`
}

type PatientSearchResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
