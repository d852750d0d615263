package usecase

import (
	"context"
	"strings"

	"hospital-scheduling/internal/converter"
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const patientSearchLimit = 20

// PatientUsecase backs the patient search box the UI uses to pre-resolve a
// patient id before creating a booking, reducing reliance on the matcher.
type PatientUsecase interface {
	SearchPatients(ctx context.Context, query string) (*dto.PatientSearchResponse, error)
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
}

func NewPatientUsecase(db *gorm.DB, log *logrus.Logger, patientRepo repository.PatientRepository) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
	}
}

func (u *patientUsecase) SearchPatients(ctx context.Context, query string) (*dto.PatientSearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &dto.PatientSearchResponse{Patients: []dto.PatientResponse{}}, nil
	}

	patients, err := u.patientRepo.Search(u.db.WithContext(ctx), query, patientSearchLimit)
	if err != nil {
		u.log.Warnf("Patient search failed for %q: %+v", query, err)
		return nil, err
	}

	return &dto.PatientSearchResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}
