package repository

import (
	"hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	// FindByName returns all patients whose name equals the given
	// (normalized) name, case-insensitively.
	FindByName(db *gorm.DB, name string) ([]entity.Patient, error)
	// Search returns patients whose name or EMR id starts with the query.
	Search(db *gorm.DB, query string, limit int) ([]entity.Patient, error)
}
